package cache

// Keyer generates cache keys.
type Keyer interface {
	// PageKey returns the key for a rendered page of the record set whose
	// hash is recordsHash.
	PageKey(recordsHash string, opts PageKeyOpts) string
}

// PageKeyOpts lists everything besides the records that changes a page.
type PageKeyOpts struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Match   string `json:"match,omitempty"`
	Format  string `json:"format"`
	Variant string `json:"variant,omitempty"` // renderer flags such as color
}

// DefaultKeyer produces "page:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PageKey implements Keyer.
func (DefaultKeyer) PageKey(recordsHash string, opts PageKeyOpts) string {
	return hashKey("page", recordsHash, opts)
}

var _ Keyer = DefaultKeyer{}
