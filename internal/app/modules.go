package app

import (
	"github.com/knd/schedrec/internal/registry"
	"github.com/knd/schedrec/modules/appendtotal"
	"github.com/knd/schedrec/modules/duplicates"
	"github.com/knd/schedrec/modules/findschedule"
	"github.com/knd/schedrec/modules/validate"
	"github.com/knd/schedrec/modules/vlookup"
)

// coreModules is the default set of operation modules registered when the
// caller does not supply its own (tests do).
var coreModules = []registry.Module{
	vlookup.Module{},
	duplicates.Module{},
	findschedule.Module{},
	validate.Module{},
	appendtotal.Module{},
}
