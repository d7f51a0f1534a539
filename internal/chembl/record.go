package chembl

// Column positions in the ChEMBL compound dump. Anything past the InChI
// key is ignored.
const (
	colChemblID = iota
	colSMILES
	colInchi
	colInchiKey
	numColumns
)

// headerToken is the first field of the dump's own header row.
const headerToken = "chembl_id"

// Compound is one row of the ChEMBL compound dump. Fields are taken
// positionally from the first four tab-separated columns; their content
// is not validated.
type Compound struct {
	ChemblID         string `json:"chembl_id"`
	CanonicalSMILES  string `json:"canonical_smiles"`
	StandardInchi    string `json:"standard_inchi"`
	StandardInchiKey string `json:"standard_inchi_key"`
}

func newCompound(fields []string) Compound {
	return Compound{
		ChemblID:         fields[colChemblID],
		CanonicalSMILES:  fields[colSMILES],
		StandardInchi:    fields[colInchi],
		StandardInchiKey: fields[colInchiKey],
	}
}
