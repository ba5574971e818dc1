package conf

import (
	"errors"
	"fmt"
)

// Validate checks the constraints the JSON types alone cannot express. All
// violations are reported at once.
func (p PartialConfiguration) Validate() error {
	return p.validate("")
}

func (p PartialConfiguration) validate(path string) error {
	var errs []error
	if p.Files != nil {
		if p.Files.MaxSize != nil && *p.Files.MaxSize == 0 {
			errs = append(errs, &Diagnostic{
				Kind:  ErrSchema,
				Field: "files.maxSize",
				Err:   errors.New("must be greater than zero"),
			})
		}
		errs = append(errs, validatePatterns("files.ignore", p.Files.Ignore)...)
		errs = append(errs, validatePatterns("files.include", p.Files.Include)...)
	}
	if p.Formatter != nil {
		errs = append(errs, validatePatterns("formatter.ignore", p.Formatter.Ignore)...)
		errs = append(errs, validatePatterns("formatter.include", p.Formatter.Include)...)
	}
	if p.Linter != nil {
		errs = append(errs, validatePatterns("linter.ignore", p.Linter.Ignore)...)
		errs = append(errs, validatePatterns("linter.include", p.Linter.Include)...)
	}
	if p.OrganizeImports != nil {
		errs = append(errs, validatePatterns("organizeImports.ignore", p.OrganizeImports.Ignore)...)
		errs = append(errs, validatePatterns("organizeImports.include", p.OrganizeImports.Include)...)
	}
	for i, extend := range p.Extends {
		if extend == "" {
			errs = append(errs, &Diagnostic{
				Kind:  ErrSchema,
				Field: fmt.Sprintf("extends[%d]", i),
				Err:   errors.New("must not be empty"),
			})
		}
	}
	errs = append(errs, p.Overrides.validate()...)

	if path != "" {
		for _, err := range errs {
			var d *Diagnostic
			if errors.As(err, &d) && d.Path == "" {
				d.Path = path
			}
		}
	}
	return errors.Join(errs...)
}
