package domain

// Target is the typed view of a finalized Record built with the default rule set.
type Target struct {
	Triples      []string `mapstructure:"triples"`
	Variants     []string `mapstructure:"variants"`
	VariantFlags string   `mapstructure:"variant_flags"`
	Freestanding bool     `mapstructure:"freestanding"`

	Arch   string `mapstructure:"arch"`
	Kernel string `mapstructure:"kernel"`
	Endian string `mapstructure:"endian"`
	Libc   string `mapstructure:"libc"`

	Cpp      []string `mapstructure:"cpp"`
	Requires []string `mapstructure:"requires"`

	DefaultCharSign string `mapstructure:"default_char_sign"`

	// Bit widths, kept textual as written in the documents.
	Short    string `mapstructure:"short"`
	Int      string `mapstructure:"int"`
	Long     string `mapstructure:"long"`
	LongLong string `mapstructure:"long_long"`
	Size     string `mapstructure:"size"`
	Ptr      string `mapstructure:"ptr"`
	Reg      string `mapstructure:"reg"`
	Obj      string `mapstructure:"obj"`
}

// Name is the canonical triple, the first entry of Triples.
func (t Target) Name() string {
	if len(t.Triples) == 0 {
		return ""
	}
	return t.Triples[0]
}

// TargetReport is the outcome of checking one requested target.
type TargetReport struct {
	Requested string
	Record    *Record
	Target    Target
}
