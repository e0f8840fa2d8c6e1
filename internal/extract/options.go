package extract

// CatalogItem is a known item name with its default GST rate, used by the
// Tier-2 line item fallback when no table-shaped rows are found.
type CatalogItem struct {
	Name   string
	TaxPct float64
}

// ScoreWeights are the weights applied by the document number disambiguation
// scorer. They are tuned against sample documents, not derived; treat them as
// product configuration.
type ScoreWeights struct {
	LetterAndDigit  int // token mixes letters and digits
	Separator       int // token contains a dash or underscore
	PreferredLength int // token length in the 5-15 sweet spot
	Overlong        int // penalty for tokens longer than 20 chars
	LetterStart     int // token starts with a letter
}

// Options carries all tunable extraction data: the vendor document prefix,
// the Tier-2 catalog, stop-word and artifact vocabularies, and the
// disambiguation weights. Unset fields are filled from defaults by New.
type Options struct {
	// VendorPrefix is the letter prefix of vendor-issued document numbers,
	// reconstructed into canonical PREFIX-digits form.
	VendorPrefix string

	// DefaultTaxPct is applied to line items whose row shape carries no tax.
	// Nil selects the production default; point at zero to apply no tax.
	DefaultTaxPct *float64

	// GenericItemCap bounds how many synthesized items the Tier-3 numeric
	// fallback may produce.
	GenericItemCap int

	// Catalog is the Tier-2 known-item list.
	Catalog []CatalogItem

	// AddressBoundaries and NotesBoundaries end free-text capture at the next
	// known label.
	AddressBoundaries []string
	NotesBoundaries   []string

	// TrailingArtifacts are OCR junk suffixes stripped from captured
	// name/address/notes fields.
	TrailingArtifacts []string

	// Weights are the disambiguation scoring weights. Nil selects the
	// production defaults; a pointed-at zero struct genuinely zeroes them.
	Weights *ScoreWeights
}

// Default tuning values. The catalog and vocabularies were calibrated against
// scanned mobile-accessory purchase bills.
const (
	DefaultVendorPrefix   = "SEL"
	DefaultTaxPct         = 5
	DefaultGenericItemCap = 5
)

// DefaultWeights returns the production disambiguation weights.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		LetterAndDigit:  10,
		Separator:       5,
		PreferredLength: 3,
		Overlong:        -5,
		LetterStart:     2,
	}
}

// DefaultCatalog returns the production Tier-2 known-item catalog.
func DefaultCatalog() []CatalogItem {
	return []CatalogItem{
		{Name: "Charger", TaxPct: 5},
		{Name: "Selfie Stick", TaxPct: 5},
		{Name: "Power Bank", TaxPct: 18},
		{Name: "Tempered Glass", TaxPct: 12},
		{Name: "Back Cover", TaxPct: 12},
		{Name: "Earphones", TaxPct: 18},
	}
}

// DefaultAddressBoundaries returns the labels that end an address capture.
func DefaultAddressBoundaries() []string {
	return []string{"Phone", "Mobile", "GST", "Invoice", "Bill", "Date", "Description", "Item", "Notes", "SubTotal", "Total"}
}

// DefaultNotesBoundaries returns the tokens that end a notes capture.
// Share/Lens are trailing UI chrome leaked into OCR output by the capture app.
func DefaultNotesBoundaries() []string {
	return []string{"Share", "Lens", "Translate", "Search"}
}

// DefaultTrailingArtifacts returns the OCR junk suffixes trimmed from
// captured free-text fields.
func DefaultTrailingArtifacts() []string {
	return []string{"Share Lens", "Share", "Lens", "LTE", "Phone", "Mobile"}
}

// withDefaults fills any unset option from the production defaults. The
// pointer fields distinguish "unset" from an explicit zero.
func (o Options) withDefaults() Options {
	if o.VendorPrefix == "" {
		o.VendorPrefix = DefaultVendorPrefix
	}
	if o.DefaultTaxPct == nil {
		pct := float64(DefaultTaxPct)
		o.DefaultTaxPct = &pct
	}
	if o.GenericItemCap <= 0 {
		o.GenericItemCap = DefaultGenericItemCap
	}
	if o.Catalog == nil {
		o.Catalog = DefaultCatalog()
	}
	if o.AddressBoundaries == nil {
		o.AddressBoundaries = DefaultAddressBoundaries()
	}
	if o.NotesBoundaries == nil {
		o.NotesBoundaries = DefaultNotesBoundaries()
	}
	if o.TrailingArtifacts == nil {
		o.TrailingArtifacts = DefaultTrailingArtifacts()
	}
	if o.Weights == nil {
		w := DefaultWeights()
		o.Weights = &w
	}
	return o
}
