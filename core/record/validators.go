package record

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tuition/core"
)

var (
	attStatusTag  = "attstatus"
	attStatusText = "status must be one of Present or Absent"

	hwStatusTag  = "hwstatus"
	hwStatusText = "status must be one of done or not-done"
)

// InitValidators registers the record validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(attStatusTag, attStatusValidation)
	core.RegisterCustomTranslation(validate, translator, attStatusTag, attStatusText)
	_ = validate.RegisterValidation(hwStatusTag, hwStatusValidation)
	core.RegisterCustomTranslation(validate, translator, hwStatusTag, hwStatusText)
}

func oneOf(value string, allowed []string) bool {
	for _, s := range allowed {
		if value == s {
			return true
		}
	}
	return false
}

// attStatusValidation only allows known attendance statuses.
func attStatusValidation(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), AttendanceStatuses)
}

// hwStatusValidation only allows known homework checklist selections.
func hwStatusValidation(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), HomeworkStatuses)
}

// StudentInput contains information needed to create or edit a Student.
type StudentInput struct {
	Name          string  `json:"nameEn" validate:"required"`
	NameUrdu      string  `json:"nameUrdu"`
	NameArabic    string  `json:"nameArabic"`
	Age           int     `json:"age" validate:"gt=0"`
	Class         string  `json:"class"`
	Subject       string  `json:"subject"`
	ParentContact string  `json:"parentContact"`
	MonthlyFee    float64 `json:"monthlyFee" validate:"gte=0"`
	JoiningDate   string  `json:"joiningDate" validate:"omitempty,isodate"`
}

func (in *StudentInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.NameUrdu = core.CleanString(in.NameUrdu)
	in.NameArabic = core.CleanString(in.NameArabic)
	in.Class = core.CleanString(in.Class)
	in.Subject = core.CleanString(in.Subject)
	in.ParentContact = core.CleanString(in.ParentContact)
	in.JoiningDate = core.CleanString(in.JoiningDate)
	return validate.Struct(in)
}

// Student builds the Student to upsert; id may be empty for a new Student.
func (in StudentInput) Student(id string) Student {
	return Student{
		ID:            id,
		Name:          in.Name,
		NameUrdu:      in.NameUrdu,
		NameArabic:    in.NameArabic,
		Age:           in.Age,
		Class:         in.Class,
		Subject:       in.Subject,
		ParentContact: in.ParentContact,
		MonthlyFee:    in.MonthlyFee,
		JoiningDate:   in.JoiningDate,
	}
}

// AttendanceBatch is a mark-attendance checklist submission.
type AttendanceBatch struct {
	Date  string           `json:"date" validate:"required,isodate"`
	Marks []AttendanceMark `json:"marks" validate:"dive"`
}

func (b *AttendanceBatch) Validate(validate *validator.Validate) error {
	b.Date = core.CleanString(b.Date)
	for i := range b.Marks {
		b.Marks[i].StudentID = core.CleanString(b.Marks[i].StudentID)
		b.Marks[i].Note = core.CleanString(b.Marks[i].Note)
	}
	return validate.Struct(b)
}

// HomeworkBatch is a mark-homework checklist submission.
type HomeworkBatch struct {
	Date  string         `json:"date" validate:"required,isodate"`
	Marks []HomeworkMark `json:"marks" validate:"dive"`
}

func (b *HomeworkBatch) Validate(validate *validator.Validate) error {
	b.Date = core.CleanString(b.Date)
	for i := range b.Marks {
		b.Marks[i].StudentID = core.CleanString(b.Marks[i].StudentID)
		b.Marks[i].Status = core.CleanString(b.Marks[i].Status, true /* lower */)
	}
	if err := validate.Struct(b); err != nil {
		return err
	}
	for i, m := range b.Marks {
		if m.Status != "" {
			b.Marks[i].Completed = m.Status == HomeworkDone
		}
	}
	return nil
}

// FeeInput is a fee payment form submission; every field is required.
type FeeInput struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	PaymentMode string  `json:"paymentMode" validate:"required"`
	Date        string  `json:"date" validate:"required,isodate"`
}

func (in *FeeInput) Validate(validate *validator.Validate) error {
	in.StudentID = core.CleanString(in.StudentID)
	in.PaymentMode = core.CleanString(in.PaymentMode)
	in.Date = core.CleanString(in.Date)
	return validate.Struct(in)
}
