package models

type Report struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	UserID       uint   `json:"user_id" gorm:"not null;index"`
	UserName     string `json:"user_name"`
	UserLastName string `json:"user_last_name"`
	UserEmail    string `json:"user_email"`
	ReportName   string `json:"report_name" gorm:"not null"`
	ReportDesc   string `json:"report_desc" gorm:"type:text"`
	ReportAnswer string `json:"report_answer" gorm:"type:text"`
}

type ReportRequest struct {
	ReportName string `json:"report_name" validate:"required,max=200"`
	ReportDesc string `json:"report_desc" validate:"required"`
}

type UpdateReportRequest struct {
	ID           uint   `json:"id" validate:"required"`
	ReportName   string `json:"report_name" validate:"required,max=200"`
	ReportDesc   string `json:"report_desc"`
	ReportAnswer string `json:"report_answer"`
}
