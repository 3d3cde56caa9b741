package domain

// Gender is registration reference data served to the profile forms. Labels
// are pre-localized because the marketplace front-ends are Arabic/French.
type Gender struct {
	Code    string `json:"code"`
	LabelAr string `json:"label_ar"`
	LabelFr string `json:"label_fr"`
}
