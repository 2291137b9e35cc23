// Package msgs translates known upstream error messages into the PT-BR
// strings the pages display. Unmapped messages pass through verbatim.
package msgs

var table = map[string]string{
	"Unauthorized":                          "Sessão expirada. Entre novamente.",
	"Onboarding already completed":          "Cadastro já concluído.",
	"a user with this email already exists": "Já existe uma conta com este e-mail.",
	"mongo: no documents in result":         "Registro não encontrado.",
}

// Localize returns the display string for an upstream error message.
func Localize(msg string) string {
	if out, ok := table[msg]; ok {
		return out
	}
	return msg
}

// LocalizeErr is Localize over an error; nil yields "".
func LocalizeErr(err error) string {
	if err == nil {
		return ""
	}
	return Localize(err.Error())
}
