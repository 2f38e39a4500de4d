package usecase

import (
	"github.com/mitchellh/mapstructure"

	"github.com/o11c/targets/internal/domain"
)

// DecodeTarget builds the typed view of a finalized record. Every Target field must
// be present in the record and every record field must map to a Target field.
func DecodeTarget(rec *domain.Record) (domain.Target, error) {
	var t domain.Target

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &t,
		TagName:     "mapstructure",
		ErrorUnused: true,
		ErrorUnset:  true,
	})
	if err != nil {
		return domain.Target{}, &domain.OpError{
			Op:   "usecase.describe",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	if err := dec.Decode(rec.Map()); err != nil {
		return domain.Target{}, &domain.OpError{
			Op:   "usecase.describe",
			Kind: domain.KindValidation,
			Path: rec.Target(),
			Err:  err,
		}
	}
	return t, nil
}
