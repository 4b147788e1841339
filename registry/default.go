/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"

	"github.com/suparena/docregistry/storagemodels"
)

// Default is the process-wide implementor slot. It exists from program start,
// so contributors compiled into the binary can register from init().
var Default = NewImplementorSlot(WithName("default"))

// RegisterImplementors contributes records for crate to Default.
func RegisterImplementors(crate storagemodels.CrateName, records ...storagemodels.ImplementorRecord) {
	ctx := context.Background()
	if err := Contribute(ctx, Default, crate, records...); err != nil {
		Default.opt.log(ctx).Warn("Registering implementors failed.", "crate", crate, "error", err)
	}
}
