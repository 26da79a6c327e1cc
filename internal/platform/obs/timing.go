package obs

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Time reports the duration of an operation when the returned func runs.
// Use with defer and a named error return:
//
//	defer obs.Time("rasp.QuerySchedule")(&err)
func Time(name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Debug().Str("op", name).Dur("dur", dur).Err(*errp).Msg("operation failed")
			return
		}
		log.Debug().Str("op", name).Dur("dur", dur).Msg("operation complete")
	}
}
