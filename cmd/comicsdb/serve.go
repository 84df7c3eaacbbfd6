package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"comicsdb/internal/catalog"
	"comicsdb/pkg/highlight"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve catalog search over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.API.Addr
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			store := catalog.NewStore(db)
			store.Highlighter = highlight.Highlighter{Open: cfg.Highlight.Open, Close: cfg.Highlight.Close}

			router := gin.Default()
			_ = router.SetTrustedProxies([]string{"127.0.0.1"})
			catalog.NewHandler(store).RegisterRoutes(router)

			router.GET("/ready", func(c *gin.Context) {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				defer cancel()
				if err := db.PingContext(ctx); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
			})

			return serve(cmd.Context(), &http.Server{Addr: addr, Handler: router})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP search server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
