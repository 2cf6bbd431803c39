package forms

import (
	"strings"

	"github.com/spf13/cast"

	"ftth-net.id/dashboard/internal/models"
)

// SplitLimit turns "10M/20M" into its upload and download parts. Anything
// that is not exactly two parts yields empty strings.
func SplitLimit(limit string) (upload, download string) {
	parts := strings.Split(limit, "/")
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func JoinLimit(upload, download string) string {
	return upload + "/" + download
}

// PackageForm is the package editor. Price arrives as a number or a numeric
// string depending on the client.
type PackageForm struct {
	Name     string      `json:"package_name" validate:"required"`
	Upload   string      `json:"upload_limit" validate:"required"`
	Download string      `json:"download_limit" validate:"required"`
	Price    interface{} `json:"package_price"`
	Desc     string      `json:"package_desc"`
}

func PackageFormFrom(p models.Package) PackageForm {
	up, down := SplitLimit(p.Limit)
	return PackageForm{
		Name:     p.Name,
		Upload:   up,
		Download: down,
		Price:    p.Price,
		Desc:     p.Desc,
	}
}

// Package validates the form and builds the backend record.
func (f PackageForm) Package() (models.Package, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Upload = strings.TrimSpace(f.Upload)
	f.Download = strings.TrimSpace(f.Download)

	errs := Errors{}
	check(f, errs)

	price, err := cast.ToIntE(f.Price)
	if f.Price == nil || f.Price == "" {
		errs.add("package_price", "package_price is required")
	} else if err != nil {
		errs.add("package_price", "package_price must be a whole number")
	} else if price < 0 {
		errs.add("package_price", "package_price must not be negative")
	}

	if err := errs.orNil(); err != nil {
		return models.Package{}, err
	}
	return models.Package{
		Name:  f.Name,
		Limit: JoinLimit(f.Upload, f.Download),
		Price: price,
		Desc:  f.Desc,
	}, nil
}
