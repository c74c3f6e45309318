package models

// Assessment is one residential property record from the Cambridge
// housing-assessment dataset, reduced to the columns the model trains on.
type Assessment struct {
	ID                        uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AssessedValue             float64 `gorm:"column:assessedvalue" json:"assessedvalue"`
	InteriorBedrooms          int     `gorm:"column:interior_bedrooms" json:"interior_bedrooms"`
	InteriorFullBaths         float64 `gorm:"column:interior_fullbaths" json:"interior_fullbaths"`
	InteriorHalfBaths         int     `gorm:"column:interior_halfbaths" json:"interior_halfbaths"`
	ConditionOverallCondition string  `gorm:"column:condition_overallcondition;size:100" json:"condition_overallcondition"`
}

func (Assessment) TableName() string { return "assessments" }
