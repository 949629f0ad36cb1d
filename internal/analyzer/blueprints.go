package analyzer

import "regexp"

var (
	blueprintDeclRe = regexp.MustCompile(`(\w+)\s*=\s*Blueprint\(\s*['"](\w+)['"]`)
	blueprintRegRe  = regexp.MustCompile(`register_blueprint\(\s*(\w+)`)
)

// extractBlueprints unions two extraction passes over every blueprint-using
// file: explicit declarations and bare registrations. When both name the same
// variable, the declaration wins.
func extractBlueprints(facts []SourceFileFact, contents map[string]string) []Blueprint {
	var blueprints []Blueprint
	declared := make(map[string]bool)

	for _, f := range facts {
		if !f.DeclaresBlueprint {
			continue
		}
		c, ok := contents[f.RelPath]
		if !ok {
			continue
		}

		for _, m := range blueprintDeclRe.FindAllStringSubmatch(c, -1) {
			blueprints = append(blueprints, Blueprint{
				Name:     m[2],
				Variable: m[1],
				File:     f.RelPath,
			})
			declared[m[1]] = true
		}

		for _, m := range blueprintRegRe.FindAllStringSubmatch(c, -1) {
			if declared[m[1]] {
				continue
			}
			declared[m[1]] = true
			blueprints = append(blueprints, Blueprint{
				Name:     m[1],
				Variable: m[1],
				File:     f.RelPath,
			})
		}
	}

	return blueprints
}

// extractFactory returns the first factory function found in walk order.
func extractFactory(facts []SourceFileFact, contents map[string]string) *Factory {
	for _, f := range facts {
		if !f.IsFactory {
			continue
		}
		c, ok := contents[f.RelPath]
		if !ok {
			continue
		}
		if m := factoryDefRe.FindStringSubmatch(c); m != nil {
			return &Factory{Function: m[1], File: f.RelPath}
		}
	}
	return nil
}
