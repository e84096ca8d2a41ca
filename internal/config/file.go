package config

import (
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// fileConfig mirrors Config for HCL decoding. Every attribute is optional;
// nil means "keep the current value".
type fileConfig struct {
	Input        *string `hcl:"input,optional"`
	Output       *string `hcl:"output,optional"`
	ImagesPerRow *int    `hcl:"images_per_row,optional"`
	Workers      *int    `hcl:"workers,optional"`
	Timeout      *string `hcl:"timeout,optional"`
	MaxBodyBytes *int64  `hcl:"max_body_bytes,optional"`
	MaxDimension *int    `hcl:"max_dimension,optional"`
	JPEGQuality  *int    `hcl:"jpeg_quality,optional"`
	Layout       *string `hcl:"layout,optional"`
	QRText       *string `hcl:"qr_text,optional"`
	Show         *bool   `hcl:"show,optional"`
	LogLevel     *string `hcl:"log_level,optional"`
	LogFormat    *string `hcl:"log_format,optional"`
}

// LoadFile reads an HCL file such as
//
//	input          = "urls.txt"
//	images_per_row = 6
//	timeout        = "5s"
//
// and applies the attributes it sets on top of base.
func LoadFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, errors.Wrapf(diags, "parsing %s", path)
	}

	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return base, errors.Wrapf(diags, "decoding %s", path)
	}
	return fc.apply(base)
}

func (fc fileConfig) apply(c Config) (Config, error) {
	setString(&c.Input, fc.Input)
	setString(&c.Output, fc.Output)
	setString(&c.Layout, fc.Layout)
	setString(&c.QRText, fc.QRText)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)
	setInt(&c.ImagesPerRow, fc.ImagesPerRow)
	setInt(&c.Workers, fc.Workers)
	setInt(&c.MaxDimension, fc.MaxDimension)
	setInt(&c.JPEGQuality, fc.JPEGQuality)
	if fc.MaxBodyBytes != nil {
		c.MaxBodyBytes = *fc.MaxBodyBytes
	}
	if fc.Show != nil {
		c.Show = *fc.Show
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return c, errors.Wrap(err, "timeout")
		}
		c.Timeout = d
	}
	return c, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
