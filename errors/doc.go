/*
Package errors provides semantic error types for the docregistry library.

The package defines the failure scenarios of the registry and its payload
plumbing with specific types that can be checked using the standard
errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound         = errors.New("entity not found")
	    ErrInvalidInput     = errors.New("invalid input")
	    ErrMalformedPayload = errors.New("malformed payload")
	    ErrNoRegistrar      = errors.New("no registrar installed")
	    ErrAlreadyInstalled = errors.New("registrar already installed")
	    ErrNoIndexMap       = errors.New("no index map found for type")
	)

Usage:

	envs, err := processor.DecodeFile(path)
	if err != nil {
	    if errors.IsMalformed(err) {
	        // Log and skip the file, the page degrades gracefully
	        logger.Warn("skipping payload", "path", path, "error", err)
	        continue
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewMalformedPayloadError("sidebar-items.js", "missing initSidebarItems call")
	err := errors.NewNoRegistrarError("sidebar:syn")
	err := errors.NewNotFoundError("ImplementorSet", "core::hash::Hash/pest")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
