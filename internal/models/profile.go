package models

type Profile struct {
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	RollNumber string `json:"roll_number"`
	Year       string `json:"year"`
	Branch     string `json:"branch"`
}

type Club struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AccessCodeHash string `json:"-"`
}
