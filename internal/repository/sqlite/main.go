package sqlite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/mredig/fingerstring-mcp/internal/repository"

	"gorm.io/gorm"
)

const defaultPageSize = 50

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type listRepo struct {
	db       *gorm.DB
	validate *validator.Validate
	pageSize int
}

var _ repository.ListController = (*listRepo)(nil)

func newListRepo(db *gorm.DB, pageSize int) *listRepo {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &listRepo{
		db:       db,
		validate: validate,
		pageSize: pageSize,
	}
}

// NewListController wraps an already migrated database.
func NewListController(db *gorm.DB, pageSize int) repository.ListController {
	return newListRepo(db, pageSize)
}

// describeInvalid turns validator errors into a short message naming each
// failed field, without the validator's struct paths.
func describeInvalid(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "slug":
			parts = append(parts, fmt.Sprintf("%s may only use letters, digits, dots, dashes and underscores", strings.ToLower(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s fails %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
