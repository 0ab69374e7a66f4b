// Package estimator produces repair cost estimates from reference data
// compiled into the binary. Price ranges are 95% confidence intervals
// (mean ± 1.96σ).
package estimator

import (
	"embed"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed data/*.csv
var refData embed.FS

// z-score for a 95% confidence interval
const z95 = 1.96

// Labor hours per service operation. Services outside this table cannot be
// estimated.
var laborStandards = map[string]float64{
	"Oil Change":                      0.5,
	"Transmission Fluid Change":       0.75,
	"Brake Fluid Change":              0.5,
	"Air Filter":                      0.25,
	"Cabin Air Filter":                0.25,
	"TPMS Sensor":                     0.5,
	"Brake Pad Replacement (Front)":   1.5,
	"Brake Pad Replacement (Rear)":    1.0,
	"Brake Rotor Replacement (Front)": 1.0,
	"Brake Rotor Replacement (Rear)":  1.0,
	"Alternator Replacement":          1.5,
	"Starter Replacement":             1.0,
	"Battery Replacement":             0.25,
	"Spark Plug Replacement (4-cyl)":  1.0,
	"Spark Plug Replacement (6-cyl)":  1.5,
	"Spark Plug Replacement (8-cyl)":  2.0,
	"Timing Belt Replacement":         4.0,
	"Water Pump Replacement":          2.5,
	"Thermostat Replacement":          1.0,
	"Radiator Replacement":            3.0,
	"AC Recharge":                     0.5,
	"Compressor Replacement":          3.0,
	"Tire Rotation":                   0.25,
	"Wheel Alignment":                 1.0,
	"Strut Replacement (Front)":       2.0,
	"Strut Replacement (Rear)":        1.5,
}

// CostEstimate is a single dealer or indy estimate with 95% CI bounds.
type CostEstimate struct {
	ShopType        string
	VehicleTier     string
	Service         string
	LaborHours      float64
	LaborRateMean   float64
	LaborRateStd    float64
	LaborRateCILow  float64
	LaborRateCIHigh float64
	LaborCostMean   float64
	LaborCostStd    float64
	LaborCostCILow  float64
	LaborCostCIHigh float64
	PartsMean       float64
	PartsStd        float64
	PartsCILow      float64
	PartsCIHigh     float64
	TotalMean       float64
	TotalStd        float64
	TotalCILow      float64
	TotalCIHigh     float64
}

// RecommendedService is a service recommended from mileage intervals.
type RecommendedService struct {
	ServiceName     string
	MileageInterval int
	DueNow          bool
}

// Result is a full estimate with dealer and indy sides.
type Result struct {
	Make              string
	Model             string
	Year              int
	Service           string
	VehicleTier       string
	LaborHours        float64
	Dealer            CostEstimate
	Indy              CostEstimate
	IndySavingsCILow  float64
	IndySavingsCIHigh float64
}

type rateKey struct{ shopType, tier string }
type partsKey struct{ service, tier string }
type vehicleKey struct{ mk, md string }

// Estimator resolves costs and maintenance intervals from embedded
// reference CSVs.
type Estimator struct {
	laborRates     map[rateKey][2]float64
	partsEstimates map[partsKey][2]float64
	vehicleTiers   map[vehicleKey]string
	makeTiers      map[string]string
	intervals      map[vehicleKey]map[string]int
	tierIntervals  map[string]map[string]int

	nowYear int
}

// New loads the embedded reference data.
func New() (*Estimator, error) {
	e := &Estimator{
		laborRates:     map[rateKey][2]float64{},
		partsEstimates: map[partsKey][2]float64{},
		vehicleTiers:   map[vehicleKey]string{},
		makeTiers:      map[string]string{},
		intervals:      map[vehicleKey]map[string]int{},
		tierIntervals:  map[string]map[string]int{},
		nowYear:        time.Now().Year(),
	}

	if err := e.loadCSV("data/labor_rates.csv", func(row map[string]string) error {
		mean, std, err := meanStd(row["rate_mean"], row["rate_std"])
		if err != nil {
			return err
		}
		e.laborRates[rateKey{row["shop_type"], row["vehicle_tier"]}] = [2]float64{mean, std}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := e.loadCSV("data/parts_estimates.csv", func(row map[string]string) error {
		mean, std, err := meanStd(row["parts_mean"], row["parts_std"])
		if err != nil {
			return err
		}
		e.partsEstimates[partsKey{row["service_name"], row["vehicle_tier"]}] = [2]float64{mean, std}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := e.loadCSV("data/vehicle_tiers.csv", func(row map[string]string) error {
		mk := strings.ToLower(strings.TrimSpace(row["make"]))
		md := strings.ToLower(strings.TrimSpace(row["model"]))
		tier := strings.TrimSpace(row["tier"])
		e.vehicleTiers[vehicleKey{mk, md}] = tier
		if _, ok := e.makeTiers[mk]; !ok {
			e.makeTiers[mk] = tier
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := e.loadCSV("data/maintenance_intervals.csv", func(row map[string]string) error {
		mk := strings.ToLower(strings.TrimSpace(row["make"]))
		md := strings.ToLower(strings.TrimSpace(row["model"]))
		miles, err := strconv.Atoi(strings.TrimSpace(row["mileage_interval"]))
		if err != nil {
			return err
		}
		key := vehicleKey{mk, md}
		if e.intervals[key] == nil {
			e.intervals[key] = map[string]int{}
		}
		e.intervals[key][strings.TrimSpace(row["service_name"])] = miles
		return nil
	}); err != nil {
		return nil, err
	}

	if err := e.loadCSV("data/maintenance_intervals_tier.csv", func(row map[string]string) error {
		tier := strings.TrimSpace(row["vehicle_tier"])
		miles, err := strconv.Atoi(strings.TrimSpace(row["mileage_interval"]))
		if err != nil {
			return err
		}
		if e.tierIntervals[tier] == nil {
			e.tierIntervals[tier] = map[string]int{}
		}
		e.tierIntervals[tier][strings.TrimSpace(row["service_name"])] = miles
		return nil
	}); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Estimator) loadCSV(name string, each func(map[string]string) error) error {
	f, err := refData.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%s: empty reference file", name)
	}

	header := records[0]
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			row[col] = rec[i]
		}
		if err := each(row); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func meanStd(meanStr, stdStr string) (float64, float64, error) {
	mean, err := strconv.ParseFloat(strings.TrimSpace(meanStr), 64)
	if err != nil {
		return 0, 0, err
	}
	std, err := strconv.ParseFloat(strings.TrimSpace(stdStr), 64)
	if err != nil {
		return 0, 0, err
	}
	return mean, std, nil
}

// Services returns the sorted list of estimatable service names.
func (e *Estimator) Services() []string {
	out := make([]string, 0, len(laborStandards))
	for svc := range laborStandards {
		out = append(out, svc)
	}
	sort.Strings(out)
	return out
}

// VehicleTier resolves the tier for a make/model. Fallback is make only,
// then "mid".
func (e *Estimator) VehicleTier(mk, md string) string {
	k := vehicleKey{strings.ToLower(strings.TrimSpace(mk)), strings.ToLower(strings.TrimSpace(md))}
	if tier, ok := e.vehicleTiers[k]; ok {
		return tier
	}
	if tier, ok := e.makeTiers[k.mk]; ok {
		return tier
	}
	return "mid"
}

// LaborHours returns the labor hours for a service, false when unknown.
func (e *Estimator) LaborHours(service string) (float64, bool) {
	h, ok := laborStandards[service]
	return h, ok
}

func (e *Estimator) laborRate(tier, shopType string) (float64, float64) {
	if r, ok := e.laborRates[rateKey{shopType, tier}]; ok {
		return r[0], r[1]
	}
	return 100.0, 10.0
}

func (e *Estimator) partsEstimate(service, tier string) (float64, float64) {
	if p, ok := e.partsEstimates[partsKey{service, tier}]; ok {
		return p[0], p[1]
	}
	return 0, 0
}

// RecommendServices lists services likely due from mileage intervals,
// make/model-specific intervals first with tier intervals filling gaps.
// Results are sorted by service name; nil means the vehicle is unknown to
// the reference data entirely.
func (e *Estimator) RecommendServices(mk, md string, mileage int) []RecommendedService {
	key := vehicleKey{strings.ToLower(strings.TrimSpace(mk)), strings.ToLower(strings.TrimSpace(md))}
	tier := e.VehicleTier(mk, md)

	intervals := map[string]int{}
	for svc, miles := range e.intervals[key] {
		intervals[svc] = miles
	}
	for svc, miles := range e.tierIntervals[tier] {
		if _, ok := intervals[svc]; !ok {
			intervals[svc] = miles
		}
	}

	names := make([]string, 0, len(intervals))
	for svc := range intervals {
		names = append(names, svc)
	}
	sort.Strings(names)

	var results []RecommendedService
	for _, svc := range names {
		results = append(results, RecommendedService{
			ServiceName:     svc,
			MileageInterval: intervals[svc],
			DueNow:          mileage >= intervals[svc],
		})
	}
	return results
}

// Indy shops discount labor for vehicles ten years or older.
func (e *Estimator) applyYearDiscount(rateMean, rateStd float64, year int, shopType string) (float64, float64) {
	if shopType == "indy" && e.nowYear-year >= 10 {
		return rateMean * 0.9, rateStd * 0.9
	}
	return rateMean, rateStd
}

func ciBounds(mean, std float64) (float64, float64) {
	low := mean - z95*std
	if low < 0 {
		low = 0
	}
	return low, mean + z95*std
}

func (e *Estimator) side(shopType, tier, service string, laborHours, rateMean, rateStd, partsMean, partsStd float64) CostEstimate {
	laborCostMean := laborHours * rateMean
	laborCostStd := laborHours * rateStd
	totalMean := laborCostMean + partsMean
	totalStd := math.Sqrt(laborCostStd*laborCostStd + partsStd*partsStd)

	est := CostEstimate{
		ShopType:      shopType,
		VehicleTier:   tier,
		Service:       service,
		LaborHours:    laborHours,
		LaborRateMean: rateMean,
		LaborRateStd:  rateStd,
		LaborCostMean: laborCostMean,
		LaborCostStd:  laborCostStd,
		PartsMean:     partsMean,
		PartsStd:      partsStd,
		TotalMean:     totalMean,
		TotalStd:      totalStd,
	}
	est.LaborRateCILow, est.LaborRateCIHigh = ciBounds(rateMean, rateStd)
	est.LaborCostCILow, est.LaborCostCIHigh = ciBounds(laborCostMean, laborCostStd)
	est.PartsCILow, est.PartsCIHigh = ciBounds(partsMean, partsStd)
	est.TotalCILow, est.TotalCIHigh = ciBounds(totalMean, totalStd)
	return est
}

// Estimate produces the dealer/indy cost estimate for a service, or nil
// when the service is not in the labor standards.
func (e *Estimator) Estimate(mk, md string, year int, service string) *Result {
	laborHours, ok := laborStandards[service]
	if !ok {
		return nil
	}

	tier := e.VehicleTier(mk, md)

	dealerMean, dealerStd := e.laborRate(tier, "dealer")
	indyMean, indyStd := e.laborRate(tier, "indy")
	indyMean, indyStd = e.applyYearDiscount(indyMean, indyStd, year, "indy")

	partsMean, partsStd := e.partsEstimate(service, tier)

	dealer := e.side("dealer", tier, service, laborHours, dealerMean, dealerStd, partsMean, partsStd)
	indy := e.side("indy", tier, service, laborHours, indyMean, indyStd, partsMean, partsStd)

	return newResult(mk, md, year, service, tier, laborHours, dealer, indy)
}

// EstimateBrakesFull combines front and rear brake pad replacement into a
// single estimate. Means add; variances add (independent).
func (e *Estimator) EstimateBrakesFull(mk, md string, year int) *Result {
	front := e.Estimate(mk, md, year, "Brake Pad Replacement (Front)")
	rear := e.Estimate(mk, md, year, "Brake Pad Replacement (Rear)")
	if front == nil || rear == nil {
		return nil
	}

	const service = "Brake Pads (Front + Rear)"
	tier := front.VehicleTier
	laborHours := front.LaborHours + rear.LaborHours

	dealer := combineSides(front.Dealer, rear.Dealer, service, laborHours)
	indy := combineSides(front.Indy, rear.Indy, service, laborHours)

	return newResult(mk, md, year, service, tier, laborHours, dealer, indy)
}

func combineSides(a, b CostEstimate, service string, laborHours float64) CostEstimate {
	est := CostEstimate{
		ShopType:        a.ShopType,
		VehicleTier:     a.VehicleTier,
		Service:         service,
		LaborHours:      laborHours,
		LaborRateMean:   a.LaborRateMean,
		LaborRateStd:    a.LaborRateStd,
		LaborRateCILow:  a.LaborRateCILow,
		LaborRateCIHigh: a.LaborRateCIHigh,
		LaborCostMean:   a.LaborCostMean + b.LaborCostMean,
		LaborCostStd:    math.Sqrt(a.LaborCostStd*a.LaborCostStd + b.LaborCostStd*b.LaborCostStd),
		LaborCostCILow:  a.LaborCostCILow + b.LaborCostCILow,
		LaborCostCIHigh: a.LaborCostCIHigh + b.LaborCostCIHigh,
		PartsMean:       a.PartsMean + b.PartsMean,
		PartsStd:        math.Sqrt(a.PartsStd*a.PartsStd + b.PartsStd*b.PartsStd),
		PartsCILow:      a.PartsCILow + b.PartsCILow,
		PartsCIHigh:     a.PartsCIHigh + b.PartsCIHigh,
	}
	est.TotalMean = a.TotalMean + b.TotalMean
	est.TotalStd = math.Sqrt(a.TotalStd*a.TotalStd + b.TotalStd*b.TotalStd)
	est.TotalCILow, est.TotalCIHigh = ciBounds(est.TotalMean, est.TotalStd)
	return est
}

func newResult(mk, md string, year int, service, tier string, laborHours float64, dealer, indy CostEstimate) *Result {
	savingsLow := dealer.TotalCILow - indy.TotalCIHigh
	savingsHigh := dealer.TotalCIHigh - indy.TotalCILow
	if savingsLow < 0 {
		savingsLow = 0
	}
	if savingsHigh < 0 {
		savingsHigh = 0
	}

	return &Result{
		Make:              mk,
		Model:             md,
		Year:              year,
		Service:           service,
		VehicleTier:       tier,
		LaborHours:        laborHours,
		Dealer:            dealer,
		Indy:              indy,
		IndySavingsCILow:  savingsLow,
		IndySavingsCIHigh: savingsHigh,
	}
}
