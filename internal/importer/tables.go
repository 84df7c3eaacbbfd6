package importer

// Table names a source table of the dump.
type Table string

const (
	TablePublisher          Table = "gcd_publisher"
	TableIndiciaPublisher   Table = "gcd_indicia_publisher"
	TableBrand              Table = "gcd_brand"
	TableSeries             Table = "gcd_series"
	TableIssue              Table = "gcd_issue"
	TableStoryType          Table = "gcd_story_type"
	TableStory              Table = "gcd_story"
	TableCreator            Table = "gcd_creator"
	TableCreatorNameDetail  Table = "gcd_creator_name_detail"
	TableCreditType         Table = "gcd_credit_type"
	TableStoryCredit        Table = "gcd_story_credit"
	TableFeatureType        Table = "gcd_feature_type"
	TableFeature            Table = "gcd_feature"
	TableMultiverse         Table = "gcd_multiverse"
	TableUniverse           Table = "gcd_universe"
	TableCharacter          Table = "gcd_character"
	TableCharacterNameDtl   Table = "gcd_character_name_detail"
	TableGroup              Table = "gcd_group"
	TableGroupNameDetail    Table = "gcd_group_name_detail"
	TableCharacterRole      Table = "gcd_character_role"
	TableMembershipType     Table = "gcd_group_membership_type"
	TableCharRelationType   Table = "gcd_character_relation_type"
	TableGroupRelationType  Table = "gcd_group_relation_type"
	TableCharacterRelation  Table = "gcd_character_relation"
	TableGroupRelation      Table = "gcd_group_relation"
	TableGroupMembership    Table = "gcd_group_membership"
	TableStoryCharacter     Table = "gcd_story_character"
	TableStoryCharGroup     Table = "gcd_story_character_group"
	TableStoryGroup         Table = "gcd_story_group"
)

// Plan is the order tables are converted in. A table only references
// tables before it. Characters and groups come before stories so that the
// names in story cells resolve to the dump's own character rows.
var Plan = []Table{
	TablePublisher,
	TableIndiciaPublisher,
	TableBrand,
	TableSeries,
	TableIssue,
	TableStoryType,
	TableCreator,
	TableMultiverse,
	TableUniverse,
	TableCharacter,
	TableGroup,
	TableStory,
	TableStoryCredit,
	TableFeatureType,
	TableFeature,
	TableCharacterNameDtl,
	TableCharacterRole,
	TableMembershipType,
	TableCharRelationType,
	TableGroupRelationType,
	TableCharacterRelation,
	TableGroupRelation,
	TableGroupMembership,
	TableStoryCharacter,
	TableStoryCharGroup,
	TableStoryGroup,
}

// lookupOnly tables are never converted; rows elsewhere are resolved
// through them.
var lookupOnly = []Table{
	TableCreatorNameDetail,
	TableCreditType,
	TableGroupNameDetail,
}

// SourceTables lists every table an import reads, for loading a dump.
func SourceTables() []string {
	out := make([]string, 0, len(Plan)+len(lookupOnly))
	for _, t := range Plan {
		out = append(out, string(t))
	}
	for _, t := range lookupOnly {
		out = append(out, string(t))
	}
	return out
}
