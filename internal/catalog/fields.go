package catalog

// QueryFields is the full set of fields that may be requested from the ad
// archive, in the order the archive documents them.
var QueryFields = []string{
	"ad_creation_time",
	"ad_creative_body",
	"ad_creative_link_caption",
	"ad_creative_link_description",
	"ad_creative_link_title",
	"ad_delivery_start_time",
	"ad_delivery_stop_time",
	"ad_snapshot_url",
	"currency",
	"demographic_distribution",
	"funding_entity",
	"impressions",
	"page_id",
	"page_name",
	"potential_reach",
	"publisher_platforms",
	"region_distribution",
	"spend",
}

var fieldSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(QueryFields))
	for _, f := range QueryFields {
		m[f] = struct{}{}
	}
	return m
}()

// IsValidField reports whether name is a known archive query field.
func IsValidField(name string) bool {
	_, ok := fieldSet[name]
	return ok
}

// Fields returns a copy of the field catalog so callers cannot mutate it.
func Fields() []string {
	out := make([]string, len(QueryFields))
	copy(out, QueryFields)
	return out
}
