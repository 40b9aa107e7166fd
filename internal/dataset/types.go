package dataset

import (
	"genwell/internal/config"
)

// Field identifies one analysis variable independently of what the input
// file calls its column.
type Field string

const (
	FieldParticipantID  Field = "participant_id"
	FieldAge            Field = "age"
	FieldLoneliness     Field = "loneliness"
	FieldHoursAlone     Field = "hours_alone"
	FieldConversations  Field = "conversations"
	FieldPhysicalHealth Field = "physical_health"
	FieldMentalHealth   Field = "mental_health"
	FieldVolunteering   Field = "volunteering"
)

// Column binds a logical field to a column header in the input file
type Column struct {
	Field  Field
	Header string
}

// Schema declares the columns a dataset must provide. It is resolved against
// the file header exactly once, at load time; a declared header that is not
// present in the file is a schema error.
type Schema struct {
	Columns []Column
}

// SchemaFromConfig builds the schema from the configured column names
func SchemaFromConfig(cfg config.DatasetConfig) Schema {
	return Schema{
		Columns: []Column{
			{Field: FieldParticipantID, Header: cfg.ParticipantIDColumn},
			{Field: FieldAge, Header: cfg.AgeColumn},
			{Field: FieldLoneliness, Header: cfg.LonelinessColumn},
			{Field: FieldHoursAlone, Header: cfg.HoursAloneColumn},
			{Field: FieldConversations, Header: cfg.ConversationsColumn},
			{Field: FieldPhysicalHealth, Header: cfg.PhysicalHealthColumn},
			{Field: FieldMentalHealth, Header: cfg.MentalHealthColumn},
			{Field: FieldVolunteering, Header: cfg.VolunteeringColumn},
		},
	}
}

// Headers returns the declared column headers in schema order
func (s Schema) Headers() []string {
	headers := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		headers = append(headers, col.Header)
	}
	return headers
}

// Record holds the raw cell values of one survey respondent, keyed by
// logical field. Values are untyped strings straight from the file; typing
// and filtering happen in the cleaning pass.
type Record map[Field]string

// Dataset is an ordered collection of records sharing one schema.
// It is created once at load time and never mutated afterwards; the cleaner
// derives its own, smaller representation instead of editing this one.
type Dataset struct {
	Schema  Schema
	Source  string
	Records []Record
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}
