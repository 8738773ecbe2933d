package cache

const (
	prefixLayout   = "layout"
	prefixArtifact = "artifact"
	prefixSession  = "session"
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a computed layout by document hash and layout options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// SessionKey keys a persisted view state.
	SessionKey(id string) string
}

// LayoutKeyOpts lists every option that changes a layout. View state is
// included because drilling or isolating changes which nodes are placed.
type LayoutKeyOpts struct {
	VizType  string   `json:"viz_type"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Strategy string   `json:"strategy,omitempty"`
	Gap      string   `json:"gap,omitempty"`
	GapSize  float64  `json:"gap_size,omitempty"`
	Sort     bool     `json:"sort,omitempty"`
	Mirror   bool     `json:"mirror,omitempty"`
	MaxDepth int      `json:"max_depth,omitempty"`
	RootID   string   `json:"root_id,omitempty"`
	Isolated []string `json:"isolated,omitempty"`
	Expanded []string `json:"expanded,omitempty"`
	Hidden   []string `json:"hidden,omitempty"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Labels     bool    `json:"labels,omitempty"`
	Background string  `json:"background,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey(prefixLayout, docHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, layoutHash, opts)
}

// SessionKey returns "session:<id>". Ids are not hashed so stores can be
// inspected by hand.
func (DefaultKeyer) SessionKey(id string) string {
	return prefixSession + ":" + id
}
