package impact

// Snapshot is the per-unit eco impact attached to a purchase line item at
// the moment of checkout. It is immutable thereafter: it must never be
// recomputed from the product's current Record, since records evolve but
// historical orders must not retroactively change.
//
// A metric absent from the stored order document decodes to zero, and zero
// is exactly what it contributes to totals. This zero-default policy applies
// only to snapshots; a Record missing a metric cannot be scored at all.
type Snapshot struct {
	CarbonSavedKg    float64 `json:"carbonSaved"`
	WaterSavedL      float64 `json:"waterSaved"`
	PlasticReducedKg float64 `json:"plasticReduced"`
}
