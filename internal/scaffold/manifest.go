package scaffold

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// typecheckTool is the dev dependency dropped in the plain-JavaScript variant.
const typecheckTool = "typescript"

// RewriteManifest updates the package manifest: the name becomes appName,
// and the plain-JavaScript variant loses the type-checking tool and its
// script entries. Edits are targeted so the author's key order and
// formatting survive; the typed variant keeps scripts untouched.
func RewriteManifest(data []byte, appName string, typed bool) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid package manifest")
	}

	out, err := sjson.SetBytes(data, "name", appName)
	if err != nil {
		return nil, fmt.Errorf("failed to set manifest name: %w", err)
	}

	if typed {
		return out, nil
	}

	out, err = sjson.DeleteBytes(out, "scripts.typecheck")
	if err != nil {
		return nil, fmt.Errorf("failed to drop typecheck script: %w", err)
	}

	if validate := gjson.GetBytes(out, "scripts.validate"); validate.Exists() {
		out, err = sjson.SetBytes(out, "scripts.validate", stripTypecheckInvocation(validate.String()))
		if err != nil {
			return nil, fmt.Errorf("failed to rewrite validate script: %w", err)
		}
	}

	out, err = sjson.DeleteBytes(out, "devDependencies."+typecheckTool)
	if err != nil {
		return nil, fmt.Errorf("failed to drop %s dev dependency: %w", typecheckTool, err)
	}

	return out, nil
}

// stripTypecheckInvocation removes the typecheck step from a composed
// script like `run-p "test -- --run" lint typecheck`.
func stripTypecheckInvocation(script string) string {
	fields := strings.Fields(script)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "typecheck" {
			// drop a now-dangling && as well
			if n := len(kept); n > 0 && kept[n-1] == "&&" {
				kept = kept[:n-1]
			}
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}
