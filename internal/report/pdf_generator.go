package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/accel_spectrum_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// Keys of the chart images passed to BuildPDFReport.
const (
	PlotMagnitude = "magnitude"
	PlotSpectrum  = "spectrum"
)

// pdfStyler holds reusable styling and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.ImageOptions(imageName, x, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// writeTable draws a header row and data rows with relative column widths.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}
	s.checkAddPage(s.lineHeight * float64(len(rows)+1))

	s.applyStyle("tableHeader")
	x := pdfMargin
	for i, h := range headers {
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	s.currentY += s.lineHeight

	s.applyStyle("tableCell")
	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		x = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

// BuildPDFReport writes a report with the run summary, the strongest
// spectral peaks and the rendered charts. Missing chart images are noted in
// place of the chart.
func BuildPDFReport(path, inputPath string, res *analysis.Result, topPeaks int, plotImages map[string][]byte) error {
	if res == nil || res.Spectrum == nil {
		return fmt.Errorf("no analysis result to report")
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("Acceleration Magnitude Spectrum Report", "h1", "C")
	styler.addSpacer(4)
	styler.writeParagraph(fmt.Sprintf("Input: %s", inputPath), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Samples: %d (%d rows dropped during loading)", res.Summary.Samples, res.Dropped), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Estimated Fs: %.3f Hz (median dt = %.6f s), bin width %.4f Hz",
		res.SampleRate, res.SamplePeriod(), res.Spectrum.BinWidth()), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Removed mean magnitude: %.4f   RMS: %.4f   Peak: %.4f",
		res.Summary.Mean, res.Summary.RMS, res.Summary.Peak), "normal", "L")
	if peak, ok := res.Spectrum.Peak(); ok {
		styler.writeParagraph(fmt.Sprintf("Dominant component: %.3f Hz, amplitude %.4g", peak.Frequency, peak.Amplitude), "normal", "L")
	}
	styler.addSpacer(4)

	if topPeaks > 0 {
		styler.writeParagraph(fmt.Sprintf("Top %d Spectral Peaks", topPeaks), "h2", "L")
		peaks := res.Spectrum.TopPeaks(topPeaks)
		if len(peaks) == 0 {
			styler.writeParagraph("No spectral peaks found.", "normal", "L")
		} else {
			rows := make([][]string, len(peaks))
			for i, p := range peaks {
				rows[i] = []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(p.Bin),
					fmt.Sprintf("%.3f", p.Frequency),
					fmt.Sprintf("%.4g", p.Amplitude),
				}
			}
			styler.writeTable([]string{"Rank", "Bin", "Frequency (Hz)", "Amplitude"}, []float64{0.15, 0.15, 0.35, 0.35}, rows)
		}
	}

	plotDefs := []struct {
		Key     string
		Title   string
		Caption string
	}{
		{PlotMagnitude, "Time Domain", "Acceleration magnitude with the mean removed"},
		{PlotSpectrum, "Frequency Domain", "Single-sided amplitude spectrum"},
	}

	imgWidth := pdfContentWidth * 0.8
	imgHeight := imgWidth / 2
	for _, pDef := range plotDefs {
		styler.newPage()
		styler.writeParagraph(pDef.Title, "h2", "L")
		if imgBytes, ok := plotImages[pDef.Key]; ok && len(imgBytes) > 0 {
			styler.addImage(imgBytes, pDef.Key, imgWidth, imgHeight, pDef.Caption)
		} else {
			styler.writeParagraph(fmt.Sprintf("Plot for %s not available.", pDef.Title), "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(path)
}
