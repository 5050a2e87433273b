package dqcmd

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/openredfish/dellicius/query"
)

type queryFile struct {
	QueryID    string         `yaml:"query_id"`
	Subqueries []subqueryFile `yaml:"subqueries"`
}

type subqueryFile struct {
	SubqueryID string         `yaml:"subquery_id"`
	RedPath    string         `yaml:"redpath"`
	Properties []propertyFile `yaml:"properties"`
}

type propertyFile struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// loadQuery reads a YAML query definition off disk into a query.Query.
func loadQuery(path string) (query.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return query.Query{}, err
	}
	var qf queryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return query.Query{}, errors.Wrapf(err, "dqcmd: parsing query file %q", path)
	}
	q := query.Query{QueryID: qf.QueryID}
	for _, sqf := range qf.Subqueries {
		sq := query.Subquery{SubqueryID: sqf.SubqueryID, RedPath: sqf.RedPath}
		for _, pf := range sqf.Properties {
			sq.Properties = append(sq.Properties, query.PropertyDescriptor{Name: pf.Name, Path: pf.Path})
		}
		q.Subqueries = append(q.Subqueries, sq)
	}
	return q, nil
}
