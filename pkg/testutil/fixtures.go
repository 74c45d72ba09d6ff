package testutil

import "time"

// Lima is the fixed-offset business zone used across tests.
var Lima = time.FixedZone("PET", -5*60*60)
