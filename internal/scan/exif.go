package scan

import (
	"context"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/aqwel-ai/aion/internal/model"
)

// EXIFAnalyzer extracts metadata from image documents.
// Photos added to datasets routinely carry GPS coordinates, device serial
// numbers, and author names in their EXIF block.
type EXIFAnalyzer struct{}

// NewEXIFAnalyzer creates a new EXIFAnalyzer.
func NewEXIFAnalyzer() *EXIFAnalyzer {
	return &EXIFAnalyzer{}
}

// Name returns the analyzer name.
func (a *EXIFAnalyzer) Name() string {
	return "exif"
}

// Category returns the analyzer category.
func (a *EXIFAnalyzer) Category() string {
	return CategoryMetadata
}

// Analyze extracts EXIF metadata from all image documents.
func (a *EXIFAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)

	for _, doc := range data.Documents {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if doc.Kind != model.KindImage || len(doc.Raw) == 0 {
			continue
		}

		findings = append(findings, a.analyzeImageData(doc.Raw, doc.Path)...)
	}

	return findings, nil
}

// analyzeImageData extracts and classifies EXIF tags from raw image bytes.
// Images without an EXIF block produce no findings and no error.
func (a *EXIFAnalyzer) analyzeImageData(imageData []byte, path string) []model.Finding {
	findings := make([]model.Finding, 0)

	rawExif, err := exif.SearchAndExtractExif(imageData)
	if err != nil || rawExif == nil {
		return findings
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return findings
	}

	gpsReported := false
	for _, entry := range entries {
		tagName := entry.TagName
		value := entry.Formatted

		switch tagName {
		// GPS coordinates reveal where the photo was taken
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			// One finding per image is enough; the tags always travel together
			if gpsReported {
				continue
			}
			gpsReported = true
			f := model.NewFinding("exif_gps", "GPS Coordinates in Image EXIF", tagName+": "+value, path)
			f.Description = "The image contains GPS coordinates in its EXIF metadata."
			findings = append(findings, f)

		case "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber":
			f := model.NewFinding("exif_serial", "Device Serial Number in Image EXIF", value, path)
			f.Description = "The image contains a device serial number, a unique identifier for the camera or lens."
			findings = append(findings, f)

		case "Artist", "Author", "Copyright", "XPAuthor":
			f := model.NewFinding("exif_author", "Author Information in Image EXIF", value, path)
			f.Description = "The image contains author or copyright information that could identify the creator."
			findings = append(findings, f)

		case "HostComputer":
			f := model.NewFinding("exif_computer", "Host Computer in Image EXIF", value, path)
			f.Description = "The image contains the name of the computer used to process it."
			findings = append(findings, f)

		case "Make", "Model":
			f := model.NewFinding("exif_camera", "Camera Information in Image EXIF", tagName+": "+value, path)
			f.Description = "The image contains camera make or model information."
			findings = append(findings, f)

		case "Software", "ProcessingSoftware":
			f := model.NewFinding("exif_software", "Software Information in Image EXIF", value, path)
			f.Description = "The image metadata names the software used to create or edit it."
			findings = append(findings, f)

		case "DateTimeOriginal", "DateTimeDigitized", "DateTime":
			f := model.NewFinding("exif_datetime", "Timestamp in Image EXIF", tagName+": "+value, path)
			f.Description = "The image contains capture or processing timestamps."
			findings = append(findings, f)
		}
	}

	return findings
}

// Ensure EXIFAnalyzer implements CheckAnalyzer.
var _ CheckAnalyzer = (*EXIFAnalyzer)(nil)
