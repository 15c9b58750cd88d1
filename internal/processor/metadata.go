package processor

import (
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// metadataGroup is a class of EXIF data a JPEG re-encode leaves behind.
type metadataGroup int

const (
	groupGPS metadataGroup = iota
	groupDevice
	groupTimestamp
	groupSerial
	groupCount
)

var groupLabels = [groupCount]string{
	groupGPS:       "GPS",
	groupDevice:    "Device Model",
	groupTimestamp: "Timestamp",
	groupSerial:    "Serial Number",
}

var tagGroups = map[string]metadataGroup{
	"Make":              groupDevice,
	"Model":             groupDevice,
	"LensModel":         groupDevice,
	"DateTime":          groupTimestamp,
	"DateTimeOriginal":  groupTimestamp,
	"DateTimeDigitized": groupTimestamp,
	"BodySerialNumber":  groupSerial,
	"LensSerialNumber":  groupSerial,
}

func groupOf(tag exif.ExifTag) (metadataGroup, bool) {
	if strings.HasSuffix(tag.IfdPath, "GPSInfo") {
		return groupGPS, true
	}
	g, ok := tagGroups[tag.TagName]
	return g, ok
}

// droppedMetadata lists, in a fixed order, the EXIF groups present in rs.
// The EXIF block is located by its TIFF header wherever the container put it
// (JPEG APP1, WebP/PNG chunks, a TIFF source itself). Sources without EXIF
// yield an empty list.
func droppedMetadata(rs io.ReadSeeker) ([]string, error) {
	if err := rewind(rs); err != nil {
		return nil, err
	}

	raw, err := exif.SearchAndExtractExifWithReader(rs)
	if errors.Is(err, exif.ErrNoExif) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	tags, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return nil, err
	}

	var seen [groupCount]bool
	for _, tag := range tags {
		if g, ok := groupOf(tag); ok {
			seen[g] = true
		}
	}

	var groups []string
	for g, present := range seen {
		if present {
			groups = append(groups, groupLabels[g])
		}
	}
	return groups, nil
}
