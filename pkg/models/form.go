package models

// Submission is the data posted by the phone number form.
// The field is not validated; an absent value binds as "".
type Submission struct {
	PhoneNumber string `form:"phone-number"`
}
