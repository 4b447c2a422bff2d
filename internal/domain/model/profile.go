package model

// SocialLinks holds optional profile links.
type SocialLinks struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Profile describes the portfolio owner.
type Profile struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Bio         string      `json:"bio"`
	Avatar      string      `json:"avatar"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"socialLinks"`
	Resume      string      `json:"resume,omitempty"`
}

// Experience is one entry of the work history.
type Experience struct {
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	StartDate    Timestamp `json:"startDate"`
	EndDate      Timestamp `json:"endDate"`
	Current      bool      `json:"current"`
	Description  []string  `json:"description"`
	Technologies []string  `json:"technologies"`
}
