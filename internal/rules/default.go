package rules

import "github.com/o11c/targets/internal/domain"

// ImportKey is the reserved document key listing documents to merge first.
const ImportKey = "import"

const (
	FieldTriples         = "triples"
	FieldVariants        = "variants"
	FieldVariantFlags    = "variant_flags"
	FieldFreestanding    = "freestanding"
	FieldArch            = "arch"
	FieldKernel          = "kernel"
	FieldEndian          = "endian"
	FieldCpp             = "cpp"
	FieldRequires        = "requires"
	FieldLibc            = "libc"
	FieldDefaultCharSign = "default_char_sign"
)

// ArchDir is where architecture documents live.
const ArchDir = "arch"

// Type width fields, in bits.
var widthFields = []string{"short", "int", "long", "long_long", "size", "ptr", "reg", "obj"}

// Default returns the rule set for target definitions.
func Default() *Set {
	s := NewSet().
		Register(FieldTriples, IdentityList).
		Register(FieldVariants, VariantList).
		Register(FieldVariantFlags, UniqueOptional).
		Register(FieldFreestanding, Boolean).
		Register(FieldArch, Provenance(ArchDir)).
		Register(FieldKernel, Override).
		Register(FieldEndian, OneOf("little", "big")).
		Register(FieldCpp, CppConditions).
		Register(FieldRequires, Requirements).
		Register(FieldLibc, Override).
		Register(FieldDefaultCharSign, Override)

	for _, f := range widthFields {
		s.Register(f, Override)
	}

	return s.AddInvariant(VariantsNeedFlags)
}

// VariantsNeedFlags requires that a target with several variants either is
// freestanding or carries variant flags telling them apart.
func VariantsNeedFlags(s Scope, rec *domain.Record) error {
	variants := rec.Lookup(FieldVariants)
	if variants.Len() <= 1 {
		return nil
	}
	if rec.Lookup(FieldFreestanding).Truthy() || rec.Lookup(FieldVariantFlags).Truthy() {
		return nil
	}
	return domain.NewOpError("rules.invariant", domain.KindInvariant, s.TargetDocument(), FieldVariants,
		"%d variants %s require %s or a non-empty %s", variants.Len(), variants, FieldFreestanding, FieldVariantFlags)
}
