// Package netex turns NeTEx schedule exports into stop-name chains.
//
// The parser streams the document and keeps an explicit stack of local
// element names. Every decision is taken on exact equality of that stack
// with one of the fixed frame paths below, because leaf names such as Name
// or ScheduledStopPointRef appear at many depths with different meaning.
// References are resolved only after the whole document has been read.
package netex

import (
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strconv"

	"golang.org/x/net/html/charset"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

var framesPrefix = []string{"PublicationDelivery", "dataObjects", "CompositeFrame", "frames"}

func framePath(parts ...string) []string {
	p := make([]string, 0, len(framesPrefix)+len(parts))
	p = append(p, framesPrefix...)
	return append(p, parts...)
}

var (
	pathScheduledStopPoint = framePath("ServiceFrame", "scheduledStopPoints", "ScheduledStopPoint")

	pathAssignment             = framePath("ServiceFrame", "stopAssignments", "PassengerStopAssignment")
	pathAssignmentScheduledRef = framePath("ServiceFrame", "stopAssignments", "PassengerStopAssignment", "ScheduledStopPointRef")
	pathAssignmentStopPlaceRef = framePath("ServiceFrame", "stopAssignments", "PassengerStopAssignment", "StopPlaceRef")

	pathJourneyPattern  = framePath("ServiceFrame", "journeyPatterns", "ServiceJourneyPattern")
	pathPatternPoint    = framePath("ServiceFrame", "journeyPatterns", "ServiceJourneyPattern", "pointsInSequence", "StopPointInJourneyPattern")
	pathPatternPointRef = framePath("ServiceFrame", "journeyPatterns", "ServiceJourneyPattern", "pointsInSequence", "StopPointInJourneyPattern", "ScheduledStopPointRef")

	pathStopPlace     = framePath("SiteFrame", "stopPlaces", "StopPlace")
	pathStopPlaceName = framePath("SiteFrame", "stopPlaces", "StopPlace", "Name")
)

func pathEqual(stack, pattern []string) bool {
	if len(stack) != len(pattern) {
		return false
	}
	// leaves differ far more often than roots
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != pattern[i] {
			return false
		}
	}
	return true
}

type assignment struct {
	scheduledRef string
	stopPlaceRef string
	hasScheduled bool
	hasStopPlace bool
}

type journeyPattern struct {
	id     string
	order  map[int]string    // sequence number -> stop point in pattern id
	points map[string]string // stop point in pattern id -> scheduled stop point id
}

type stopPlace struct {
	name    string
	hasName bool
}

type extractor struct {
	stack []string

	scheduledStopPoints map[string]struct{}
	assignments         []*assignment

	patterns       []*journeyPattern
	currentPattern *journeyPattern
	currentPoint   string

	stopPlaces       map[string]*stopPlace
	currentStopPlace string

	inName  bool
	nameBuf []byte
}

func newExtractor() *extractor {
	return &extractor{
		stack:               make([]string, 0, 64),
		scheduledStopPoints: make(map[string]struct{}),
		stopPlaces:          make(map[string]*stopPlace),
	}
}

// Extract reads one NeTEx document and returns its chains keyed by
// domain.ChainHash. Journey patterns with identical stop-name sequences
// collapse into one entry. Any missing required attribute or dangling
// reference aborts the document with an *ExtractionError.
func Extract(r io.Reader) (domain.Chains, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	ex := newExtractor()
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, structureError(ex.stack, "", "malformed document", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ex.stack = append(ex.stack, t.Name.Local)
			if err := ex.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			ex.end()
			if len(ex.stack) > 0 {
				ex.stack = ex.stack[:len(ex.stack)-1]
			}
		case xml.CharData:
			if ex.inName {
				ex.nameBuf = append(ex.nameBuf, t...)
			}
		}
	}

	return ex.resolve()
}

func (ex *extractor) start(el xml.StartElement) error {
	switch {
	case pathEqual(ex.stack, pathScheduledStopPoint):
		id, err := ex.requireAttr(el, "id")
		if err != nil {
			return err
		}
		ex.scheduledStopPoints[id] = struct{}{}

	case pathEqual(ex.stack, pathAssignment):
		ex.assignments = append(ex.assignments, &assignment{})

	case pathEqual(ex.stack, pathAssignmentScheduledRef):
		ref, err := ex.requireAttr(el, "ref")
		if err != nil {
			return err
		}
		last := ex.assignments[len(ex.assignments)-1]
		last.scheduledRef, last.hasScheduled = ref, true

	case pathEqual(ex.stack, pathAssignmentStopPlaceRef):
		ref, err := ex.requireAttr(el, "ref")
		if err != nil {
			return err
		}
		last := ex.assignments[len(ex.assignments)-1]
		last.stopPlaceRef, last.hasStopPlace = ref, true

	case pathEqual(ex.stack, pathJourneyPattern):
		id, err := ex.requireAttr(el, "id")
		if err != nil {
			return err
		}
		ex.currentPattern = &journeyPattern{
			id:     id,
			order:  make(map[int]string),
			points: make(map[string]string),
		}
		ex.patterns = append(ex.patterns, ex.currentPattern)

	case pathEqual(ex.stack, pathPatternPoint):
		id, err := ex.requireAttr(el, "id")
		if err != nil {
			return err
		}
		rawOrder, err := ex.requireAttr(el, "order")
		if err != nil {
			return err
		}
		order, convErr := strconv.Atoi(rawOrder)
		if convErr != nil {
			return structureError(ex.stack, id, "invalid order attribute", convErr)
		}
		ex.currentPoint = id
		ex.currentPattern.order[order] = id

	case pathEqual(ex.stack, pathPatternPointRef):
		ref, err := ex.requireAttr(el, "ref")
		if err != nil {
			return err
		}
		ex.currentPattern.points[ex.currentPoint] = ref

	case pathEqual(ex.stack, pathStopPlace):
		id, err := ex.requireAttr(el, "id")
		if err != nil {
			return err
		}
		ex.currentStopPlace = id
		ex.stopPlaces[id] = &stopPlace{}

	case pathEqual(ex.stack, pathStopPlaceName):
		ex.inName = true
		ex.nameBuf = ex.nameBuf[:0]
	}
	return nil
}

// end runs before the element is popped from the stack.
func (ex *extractor) end() {
	if ex.inName && pathEqual(ex.stack, pathStopPlaceName) {
		ex.inName = false
		if len(ex.nameBuf) > 0 {
			sp := ex.stopPlaces[ex.currentStopPlace]
			sp.name, sp.hasName = string(ex.nameBuf), true
		}
	}
}

func (ex *extractor) requireAttr(el xml.StartElement, name string) (string, error) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, nil
		}
	}
	return "", structureError(ex.stack, "", "missing "+name+" attribute on "+el.Name.Local, nil)
}

func (ex *extractor) resolve() (domain.Chains, error) {
	// scheduled stop point -> stop place display name
	names := make(map[string]string, len(ex.assignments))
	for _, a := range ex.assignments {
		if !a.hasScheduled {
			return nil, structureError(pathAssignment, a.stopPlaceRef, "stop assignment without ScheduledStopPointRef", nil)
		}
		if !a.hasStopPlace {
			return nil, structureError(pathAssignment, a.scheduledRef, "stop assignment without StopPlaceRef", nil)
		}
		sp, ok := ex.stopPlaces[a.stopPlaceRef]
		if !ok {
			return nil, structureError(pathAssignmentStopPlaceRef, a.stopPlaceRef, "reference to unknown stop place", nil)
		}
		if !sp.hasName {
			return nil, structureError(pathStopPlaceName, a.stopPlaceRef, "stop place has no name", nil)
		}
		names[a.scheduledRef] = sp.name
	}

	chains := make(domain.Chains, len(ex.patterns))
	for _, p := range ex.patterns {
		if len(p.order) == 0 {
			continue
		}
		seq := make([]int, 0, len(p.order))
		for n := range p.order {
			seq = append(seq, n)
		}
		sort.Ints(seq)

		stops := make([]string, 0, len(seq))
		for _, n := range seq {
			pointID := p.order[n]
			scheduled, ok := p.points[pointID]
			if !ok {
				return nil, structureError(pathPatternPoint, pointID, "stop point in pattern "+p.id+" without ScheduledStopPointRef", nil)
			}
			name, ok := names[scheduled]
			if !ok {
				reason := "scheduled stop point has no stop assignment"
				if _, declared := ex.scheduledStopPoints[scheduled]; !declared {
					reason = "reference to unknown scheduled stop point"
				}
				return nil, structureError(pathPatternPointRef, scheduled, reason, nil)
			}
			stops = append(stops, name)
		}
		chains[domain.ChainHash(stops)] = stops
	}
	return chains, nil
}
