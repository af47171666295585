package comment

import (
	"net/http"

	"microblog/internal/shared/validate"
)

type Form struct {
	Text string `validate:"required"`
}

func ParseForm(r *http.Request) (Form, error) {
	if err := r.ParseForm(); err != nil {
		return Form{}, err
	}
	return Form{Text: r.PostFormValue("text")}, nil
}

func (f Form) Validate() validate.FieldErrors {
	return validate.Struct(f)
}
