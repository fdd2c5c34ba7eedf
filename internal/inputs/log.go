package inputs

import "github.com/iver-wharf/wharf-core/v2/pkg/logger"

var log = logger.NewScoped("INPUTS")
