package sim

// Kind says what produced an event.
type Kind string

const (
	KindSearch  Kind = "search"  // Search beam detection
	KindConfirm Kind = "confirm" // Confirmation beam started a track
	KindUpdate  Kind = "update"  // Track beam detection
	KindLoss    Kind = "loss"    // Track beam missed, track dropped
)

// Event is one detection record. Search events carry the pointing of the
// search beam, loss events the predicted track pointing. Face and Sector
// are -1 where they do not apply.
//
// Time is when the beam fired. For search and confirm events that falls
// inside the frame, after the dwell of every earlier beam, not at the
// frame start.
type Event struct {
	Seq       int
	Kind      Kind
	Time      float64 // s
	Azimuth   float64 // deg
	Elevation float64 // deg
	Face      int
	Sector    int
	SNR       float64 // dB
	Target    int
	Track     string
}

// EventHandler receives events as they are emitted.
type EventHandler func(Event)

// Stats are the run totals.
type Stats struct {
	SearchHits    int
	Confirmations int
	Losses        int
	TrackUpdates  int
	Frames        int
	EndTime       float64 // s
}
