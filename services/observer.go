package services

import (
	"swappa-scraper/scraper/swappa"
	"swappa-scraper/utils"
)

// LogObserver reports parser events through the application logger.
type LogObserver struct {
	logger *utils.Logger
}

func NewLogObserver(logger *utils.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) RowSkipped(s swappa.Skip) {
	o.logger.Warn("[swappa] Skipping row #%d (%d cells, %s): %v", s.Ordinal, s.Cells, s.Reason, s.Err)
}

func (o *LogObserver) BatchParsed(s swappa.Stats) {
	if s.StructureEmpty {
		o.logger.Warn("[swappa] No listing rows matched; the page layout may have changed")
		return
	}
	o.logger.Info("[swappa] Parsed %d rows: %d accepted, %d skipped", s.RowsSeen, s.Accepted, s.Skipped)
	if len(s.DuplicateCodes) > 0 {
		o.logger.Warn("[swappa] %d listing codes appear more than once on the page: %v", len(s.DuplicateCodes), s.DuplicateCodes)
	}
}
