package constants

import "time"

// DefaultPageSize controls how many records each page fetch asks for
const DefaultPageSize = 250

// DefaultRowEstimate is the assumed height in rows of an unmeasured record
const DefaultRowEstimate = 1

// DefaultOverscan controls how many extra records are resolved beyond the
// visible window on each end, reducing blank flicker during fast scrolling
const DefaultOverscan = 10

// LoadThresholdRows controls how close to the bottom, in rows, scrolling has
// to get before the next page fetch kicks off
const LoadThresholdRows = 50

// DefaultGeneratedCount is the number of records the generated source
// produces when no database is given
const DefaultGeneratedCount = 10000

// ToastDuration is how long notifications stay on screen
const ToastDuration = 3 * time.Second
