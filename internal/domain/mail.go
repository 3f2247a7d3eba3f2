package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// BreedingReportMailData: 配对报告邮件所需的数据
type BreedingReportMailData struct {
	FullName    string  `json:"fullName"`
	FatherName  string  `json:"fatherName"`
	MotherName  string  `json:"motherName"`
	Score       float64 `json:"score"`
	SuperSprint bool    `json:"superSprint"`
}
