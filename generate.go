// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

// Generate builds the typed module around code and returns its root.
//
// The error name is validated before anything is built, and code is
// copied rather than re-parented, so a failed call leaves code as it was.
// The returned tree renders, in order, to:
//
//	/* eslint-disable */
//	<header>
//	const peggyParser: {...} = <annotated code>
//	<declaration library>
//	<rename of the error constructor>
//	<ParseOptions, ParseFunction, parse>
//	<error type export>
//	<tracer export, when cfg.Trace is set>
func Generate(code *Node, cfg Config) (*Node, error) {
	if code == nil {
		return nil, ErrMissingCode
	}
	errorName := cfg.ErrorTypeName()
	if err := ValidateErrorName(errorName, cfg.Trace); err != nil {
		return nil, err
	}

	root := Wrap(Annotate(code), cfg.Header)
	if err := Assemble(root, errorName, cfg.Trace); err != nil {
		return nil, err
	}
	return root, nil
}
