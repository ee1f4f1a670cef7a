package propval

import "dbrx/dbrxerr"

var errEmptyPath = dbrxerr.Configurationf("property path must not be empty")
