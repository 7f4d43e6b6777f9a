package cmd

import "github.com/ardnew/tmplgen/lang"

var (
	ErrJSONMarshal  = lang.NewError("marshal JSON")
	ErrYAMLMarshal  = lang.NewError("marshal YAML")
	ErrReadValues   = lang.NewError("read values")
	ErrInvalidSet   = lang.NewError("invalid assignment (want key=expr)")
	ErrWriteOutput  = lang.NewError("write output")
	ErrWriteConfig  = lang.NewError("write configuration file")
	ErrFileExists   = lang.NewError("file exists (use --force to overwrite)")
	ErrUnknownFunc  = lang.NewError("unknown function")
	ErrInvalidValue = lang.NewError("values must be a mapping")
)
