package scoring

// Category is a four-band severity label. Lower percentages are more severe.
type Category string

const (
	VerySevere Category = "Very Severe Impairment"
	Severe     Category = "Severe Impairment"
	Moderate   Category = "Moderate Impairment"
	Mild       Category = "Mild Impairment"
)

// Classify maps a 0-100 percentage to its band. Each upper bound is inclusive:
// 25.00 is VerySevere, 25.01 is Severe.
func Classify(pct float64) Category {
	switch {
	case pct <= 25:
		return VerySevere
	case pct <= 50:
		return Severe
	case pct <= 75:
		return Moderate
	default:
		return Mild
	}
}

// Categories lists the bands from most to least severe.
func Categories() []Category {
	return []Category{VerySevere, Severe, Moderate, Mild}
}

// Indonesian returns the label used on the printed instrument.
func (c Category) Indonesian() string {
	switch c {
	case VerySevere:
		return "Hambatan Sangat Berat"
	case Severe:
		return "Hambatan Berat"
	case Moderate:
		return "Hambatan Sedang"
	case Mild:
		return "Hambatan Ringan"
	}
	return string(c)
}
