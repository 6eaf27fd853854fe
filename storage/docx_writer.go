package storage

import (
	"fmt"

	"github.com/gomutex/godocx"

	"swappa-scraper/models"
)

// DefaultReportTitle heads the DOCX report.
const DefaultReportTitle = "Swappa listings report"

// DOCXExporter writes a Word report: one titled section per listing with
// price, carrier, seller and location as labelled runs.
type DOCXExporter struct {
	title string
}

func NewDOCXExporter(title string) *DOCXExporter {
	return &DOCXExporter{title: title}
}

func (d *DOCXExporter) Format() string { return FormatDOCX }

// SectionTitle is the heading used for a listing: "{storage} {color} ({condition})".
func SectionTitle(l *models.Listing) string {
	return fmt.Sprintf("%s %s (%s)", l.Storage, l.Color, l.Condition)
}

func (d *DOCXExporter) Export(listings []*models.Listing, path string) error {
	if err := ensureDir("docx", path); err != nil {
		return err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("docx: new document: %w", err)
	}

	if _, err := doc.AddHeading(d.title, 1); err != nil {
		return fmt.Errorf("docx: title: %w", err)
	}
	doc.AddParagraph(fmt.Sprintf("Collected %d listings.", len(listings)))

	for _, l := range listings {
		if _, err := doc.AddHeading(SectionTitle(l), 3); err != nil {
			return fmt.Errorf("docx: heading for %q: %w", l.Code, err)
		}

		p := doc.AddParagraph("")
		p.AddText("Price: ").Bold(true)
		p.AddText(l.Price + " | ")
		p.AddText("Carrier: ").Bold(true)
		p.AddText(l.Carrier)

		p = doc.AddParagraph("")
		p.AddText("Seller: ").Bold(true)
		p.AddText(l.Seller + " (" + l.Location + ")")
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("docx: save %q: %w", path, err)
	}
	return nil
}
