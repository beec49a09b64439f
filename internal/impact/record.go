// Package impact defines the environmental domain values shared by the
// scoring, aggregation, timeline, and badge components: per-product
// ImpactRecords with unit canonicalization and fail-fast validation, and the
// immutable per-purchase Snapshot.
package impact

import (
	"fmt"
	"time"
)

// VerificationStatus describes where a record sits in the third-party
// verification workflow. Verification never changes how a record is scored;
// it is exposed alongside the score instead.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// ParseVerificationStatus validates a verification status string.
// An empty string defaults to VerificationPending.
func ParseVerificationStatus(s string) (VerificationStatus, error) {
	switch VerificationStatus(s) {
	case "":
		return VerificationPending, nil
	case VerificationPending, VerificationVerified, VerificationRejected:
		return VerificationStatus(s), nil
	default:
		return "", invalidField("verificationStatus", "unknown status %q", s)
	}
}

// PackagingType describes the disposal class of a product's packaging.
type PackagingType string

const (
	PackagingBiodegradable PackagingType = "biodegradable"
	PackagingRecyclable    PackagingType = "recyclable"
	PackagingReusable      PackagingType = "reusable"
	PackagingConventional  PackagingType = "conventional"
)

// ParsePackagingType validates a packaging type string.
// An empty string defaults to PackagingConventional.
func ParsePackagingType(s string) (PackagingType, error) {
	switch PackagingType(s) {
	case "":
		return PackagingConventional, nil
	case PackagingBiodegradable, PackagingRecyclable, PackagingReusable, PackagingConventional:
		return PackagingType(s), nil
	default:
		return "", invalidField("packaging.type", "unknown packaging type %q", s)
	}
}

// MaterialShare is one entry in a recycled-materials breakdown.
type MaterialShare struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Certification is a sustainability certification attached to a record.
type Certification struct {
	Name            string     `json:"name" yaml:"name"`
	IssuingBody     string     `json:"issuingBody" yaml:"issuingBody"`
	ValidUntil      *time.Time `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
	VerificationURL string     `json:"verificationUrl,omitempty" yaml:"verificationUrl,omitempty"`
}

// EndOfLife holds end-of-life impact percentages, both in [0,100].
type EndOfLife struct {
	Recyclability        float64 `json:"recyclability" yaml:"recyclability"`
	Biodegradability     float64 `json:"biodegradability" yaml:"biodegradability"`
	DisposalInstructions string  `json:"disposalInstructions,omitempty" yaml:"disposalInstructions,omitempty"`
}

// Verification holds the verification state exposed next to scores.
type Verification struct {
	Status     VerificationStatus `json:"status" yaml:"status"`
	VerifiedBy string             `json:"verifiedBy,omitempty" yaml:"verifiedBy,omitempty"`
	Date       *time.Time         `json:"date,omitempty" yaml:"date,omitempty"`
}

// RecordInput is the raw, unit-bearing form of a product's environmental
// profile as produced by the brand/verification workflow. It is the only way
// to obtain a Record: NewRecord canonicalizes every measurement and rejects
// malformed input with *ValidationError, so a constructed Record is always
// valid.
type RecordInput struct {
	ProductID string `json:"productId" yaml:"productId"`

	// Required measurements. A nil pointer is a missing metric and fails
	// validation; the zero-default policy applies only to purchase
	// snapshots, never to records.
	CarbonFootprint   *Measurement `json:"carbonFootprint" yaml:"carbonFootprint"`
	WaterUsage        *Measurement `json:"waterUsage" yaml:"waterUsage"`
	EnergyConsumption *Measurement `json:"energyConsumption" yaml:"energyConsumption"`

	RecycledPercentage *float64        `json:"recycledPercentage" yaml:"recycledPercentage"`
	RecycledMaterials  []MaterialShare `json:"recycledMaterials,omitempty" yaml:"recycledMaterials,omitempty"`

	EndOfLife *EndOfLife `json:"endOfLifeImpact" yaml:"endOfLifeImpact"`

	Certifications        []Certification `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	PackagingType         string          `json:"packagingType,omitempty" yaml:"packagingType,omitempty"`
	ManufacturingCountry  string          `json:"manufacturingCountry,omitempty" yaml:"manufacturingCountry,omitempty"`
	ManufacturingDistance *Measurement    `json:"manufacturingDistance,omitempty" yaml:"manufacturingDistance,omitempty"`

	VerificationStatus string     `json:"verificationStatus,omitempty" yaml:"verificationStatus,omitempty"`
	VerifiedBy         string     `json:"verifiedBy,omitempty" yaml:"verifiedBy,omitempty"`
	VerificationDate   *time.Time `json:"verificationDate,omitempty" yaml:"verificationDate,omitempty"`
}

// Record is a product's canonical environmental profile. All measurements
// are in canonical units (kg, L, kWh, km) and all percentages are in
// [0,100]. Records are created and updated by an external workflow and are
// read-only to this core.
type Record struct {
	ProductID string

	CarbonFootprintKg    float64
	WaterUsageL          float64
	EnergyConsumptionKWh float64

	RecycledPercentage float64
	RecycledMaterials  []MaterialShare

	EndOfLife EndOfLife

	Certifications          []Certification
	Packaging               PackagingType
	ManufacturingCountry    string
	ManufacturingDistanceKm float64

	Verification Verification
}

// NewRecord canonicalizes and validates a RecordInput.
//
// Every unit conversion failure and out-of-range percentage is reported as a
// *ValidationError naming the offending field, so invalid states are
// unrepresentable once a Record exists.
func NewRecord(in RecordInput) (*Record, error) {
	rec := &Record{
		ProductID:            in.ProductID,
		RecycledMaterials:    in.RecycledMaterials,
		Certifications:       in.Certifications,
		ManufacturingCountry: in.ManufacturingCountry,
	}

	var err error
	if rec.CarbonFootprintKg, err = requireMeasurement("carbonFootprint", in.CarbonFootprint, NormalizeCarbonToKg); err != nil {
		return nil, err
	}
	if rec.WaterUsageL, err = requireMeasurement("waterUsage", in.WaterUsage, NormalizeWaterToLiters); err != nil {
		return nil, err
	}
	if rec.EnergyConsumptionKWh, err = requireMeasurement("energyConsumption", in.EnergyConsumption, NormalizeEnergyToKWh); err != nil {
		return nil, err
	}

	if in.RecycledPercentage == nil {
		return nil, invalidField("recycledMaterials.percentage", "required metric is missing")
	}
	if err := checkPercentage("recycledMaterials.percentage", *in.RecycledPercentage); err != nil {
		return nil, err
	}
	rec.RecycledPercentage = *in.RecycledPercentage

	for i, m := range in.RecycledMaterials {
		field := fmt.Sprintf("recycledMaterials.materials[%d].percentage", i)
		if err := checkPercentage(field, m.Percentage); err != nil {
			return nil, err
		}
	}

	if in.EndOfLife == nil {
		return nil, invalidField("endOfLifeImpact", "required metric is missing")
	}
	if err := checkPercentage("endOfLifeImpact.recyclability", in.EndOfLife.Recyclability); err != nil {
		return nil, err
	}
	if err := checkPercentage("endOfLifeImpact.biodegradability", in.EndOfLife.Biodegradability); err != nil {
		return nil, err
	}
	rec.EndOfLife = *in.EndOfLife

	if rec.Packaging, err = ParsePackagingType(in.PackagingType); err != nil {
		return nil, err
	}

	status, err := ParseVerificationStatus(in.VerificationStatus)
	if err != nil {
		return nil, err
	}
	rec.Verification = Verification{
		Status:     status,
		VerifiedBy: in.VerifiedBy,
		Date:       in.VerificationDate,
	}

	if in.ManufacturingDistance != nil {
		rec.ManufacturingDistanceKm, err = NormalizeDistanceToKm(*in.ManufacturingDistance)
		if err != nil {
			return nil, invalidField("manufacturingLocation.distance", "%v", err)
		}
	}

	return rec, nil
}

// Validate re-checks the range invariants on a Record. NewRecord establishes
// them; Validate exists for callers handed a Record they did not construct.
func (r *Record) Validate() error {
	if err := checkPercentage("recycledMaterials.percentage", r.RecycledPercentage); err != nil {
		return err
	}
	if err := checkPercentage("endOfLifeImpact.recyclability", r.EndOfLife.Recyclability); err != nil {
		return err
	}
	if err := checkPercentage("endOfLifeImpact.biodegradability", r.EndOfLife.Biodegradability); err != nil {
		return err
	}
	if r.CarbonFootprintKg < 0 {
		return invalidField("carbonFootprint", "must not be negative")
	}
	if r.WaterUsageL < 0 {
		return invalidField("waterUsage", "must not be negative")
	}
	if r.EnergyConsumptionKWh < 0 {
		return invalidField("energyConsumption", "must not be negative")
	}
	return nil
}

// requireMeasurement rejects nil measurements and wraps canonicalization
// failures with the field name.
func requireMeasurement(field string, m *Measurement, normalize func(Measurement) (float64, error)) (float64, error) {
	if m == nil {
		return 0, invalidField(field, "required metric is missing")
	}
	v, err := normalize(*m)
	if err != nil {
		return 0, invalidField(field, "%v (unit %q)", err, m.Unit)
	}
	return v, nil
}

// checkPercentage enforces the [0,100] invariant shared by every percentage
// field on a record.
func checkPercentage(field string, v float64) error {
	if v < 0 || v > 100 {
		return invalidField(field, "percentage %g out of range [0,100]", v)
	}
	return nil
}
