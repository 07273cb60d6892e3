// pkg/api/interactions_v1.go
package api

// InteractionV1 is the stable JSON/JSONL schema for predicted PPIs.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type InteractionV1 struct {
	Host            string   `json:"host"`
	Pathogen        string   `json:"pathogen"`
	HostGO          []string `json:"host_go"`
	PathogenGO      []string `json:"pathogen_go"`
	SimilarityScore float64  `json:"similarity_score"`
}
