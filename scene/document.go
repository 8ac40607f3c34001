package scene

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the scene file format written by EncodeDocument.
const DocumentVersion = 1

// Document is the on-disk form of a scene or prefab.
type Document struct {
	Version  int              `yaml:"version"`
	ID       string           `yaml:"id,omitempty"`
	Entities []EntityDocument `yaml:"entities"`
}

type EntityDocument struct {
	Token      Token               `yaml:"token"`
	Components []ComponentDocument `yaml:"components"`
}

type ComponentDocument struct {
	Type string    `yaml:"type"`
	Data yaml.Node `yaml:"data"`
}

// EncodeDocument renders snap as a YAML scene document.
func EncodeDocument(snap *Snapshot) ([]byte, error) {
	doc := Document{
		Version:  DocumentVersion,
		Entities: make([]EntityDocument, 0, len(snap.Records)),
	}
	if snap.ID != uuid.Nil {
		doc.ID = snap.ID.String()
	}

	for _, record := range snap.Records {
		entity := EntityDocument{Token: record.Token}
		for _, component := range record.Components {
			var node yaml.Node
			if err := yaml.Unmarshal(component.Data, &node); err != nil {
				return nil, errors.Wrapf(err, "token %d: component %s", record.Token, component.Type)
			}
			data := node
			if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
				data = *node.Content[0]
			}
			entity.Components = append(entity.Components, ComponentDocument{Type: component.Type, Data: data})
		}
		doc.Entities = append(doc.Entities, entity)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshal scene document")
	}
	return out, nil
}

// DecodeDocument parses a YAML scene document into a snapshot. Component
// data is only checked for well-formed YAML here; codecs validate it when
// the snapshot is restored or instantiated.
func DecodeDocument(data []byte) (*Snapshot, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal scene document")
	}
	if doc.Version != DocumentVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", doc.Version)
	}

	snap := &Snapshot{Records: make([]EntityRecord, 0, len(doc.Entities))}
	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, errors.Wrap(err, "scene id")
		}
		snap.ID = id
	}

	for _, entity := range doc.Entities {
		record := EntityRecord{Token: entity.Token}
		for _, component := range entity.Components {
			if component.Data.Kind == 0 {
				// Marker components may omit their data
				record.Components = append(record.Components, ComponentRecord{Type: component.Type, Data: []byte("{}\n")})
				continue
			}
			raw, err := yaml.Marshal(&component.Data)
			if err != nil {
				return nil, errors.Wrapf(err, "token %d: component %s", entity.Token, component.Type)
			}
			record.Components = append(record.Components, ComponentRecord{Type: component.Type, Data: raw})
		}
		snap.Records = append(snap.Records, record)
	}

	return snap, nil
}
