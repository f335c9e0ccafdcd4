package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"

	"github.com/mlaurent/restodoc/db/ent/schema/utils"
)

type Document struct{ ent.Schema }

func (Document) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "document"},
	}
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		field.String("source_path").NotEmpty(),
		field.String("doc_type").NotEmpty().
			Validate(utils.EnumValidator("Z_REPORT", "SUPPLIER_INVOICE", "PRICE_SHEET")),
		field.String("ocr_text").
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.Time("ingested_at").Default(time.Now),
	}
}

func (Document) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("jobs", ParseJob.Type),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("source_path"),
		index.Fields("doc_type", "ingested_at"),
	}
}
