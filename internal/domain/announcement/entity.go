package announcement

import (
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
)

type Announcement struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Department string    `json:"department,omitempty"` // empty means company-wide
	CreatedAt  time.Time `json:"created_at"`
}

type CreateRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Department string `json:"department,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "body is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
