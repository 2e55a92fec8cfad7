package notify

import "time"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// DefaultTTL is how long a notice stays active unless replaced or dismissed.
const DefaultTTL = 4 * time.Second
