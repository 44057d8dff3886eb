package parse

import (
	"strings"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// keywordLabel is one row of a category table. Tables are slices, not
// maps: the first keyword found in iteration order wins, so insertion
// order must be preserved.
type keywordLabel struct {
	keyword string
	label   string
}

var expenseCategories = []keywordLabel{
	{"mercado", "Mercado"}, {"supermercado", "Mercado"}, {"feira", "Mercado"},
	{"restaurante", "Alimentação Fora"}, {"lanche", "Alimentação Fora"}, {"pizza", "Alimentação Fora"},
	{"ifood", "Alimentação Fora"}, {"ubereats", "Alimentação Fora"},
	{"aluguel", "Moradia"}, {"condominio", "Moradia"}, {"condomínio", "Moradia"},
	{"luz", "Contas"}, {"energia", "Contas"}, {"água", "Contas"}, {"agua", "Contas"},
	{"gás", "Contas"}, {"gas", "Contas"},
	{"internet", "Contas"}, {"telefone", "Contas"}, {"celular", "Contas"},
	{"transporte", "Transporte"}, {"uber", "Transporte"}, {"99", "Transporte"},
	{"taxi", "Transporte"}, {"táxi", "Transporte"}, {"gasolina", "Transporte"},
	{"combustivel", "Transporte"}, {"combustível", "Transporte"}, {"estacionamento", "Transporte"},
	{"farmacia", "Saúde"}, {"farmácia", "Saúde"}, {"dentista", "Saúde"},
	{"curso", "Educação"}, {"faculdade", "Educação"}, {"escola", "Educação"}, {"livro", "Educação"},
	{"cinema", "Lazer"}, {"show", "Lazer"},
	{"viagem", "Viagens"}, {"hotel", "Viagens"}, {"passagem", "Viagens"},
	{"mercado livre", "Casa"}, {"magalu", "Casa"}, {"amazon", "Casa"},
	{"mobiliario", "Casa"}, {"mobiliário", "Casa"},
	{"roupa", "Pessoais"}, {"roupas", "Pessoais"}, {"sapato", "Pessoais"}, {"barbearia", "Pessoais"},
	{"imposto", "Impostos"}, {"taxa", "Taxas"}, {"banco", "Taxas"}, {"tarifa", "Taxas"},
}

var incomeCategories = []keywordLabel{
	{"salario", "Salário"}, {"salário", "Salário"}, {"13º", "Salário"},
	{"ferias", "Salário"}, {"férias", "Salário"},
	{"freela", "Freelance"}, {"freelancer", "Freelance"}, {"bico", "Freelance"},
	{"bonus", "Bônus"}, {"bônus", "Bônus"}, {"comissão", "Comissões"}, {"comissao", "Comissões"},
	{"aluguel", "Aluguel"}, {"aluguel recebido", "Aluguel"},
	{"venda", "Venda de Itens"}, {"vendi", "Venda de Itens"},
	{"juros", "Rendimentos"}, {"rendimentos", "Rendimentos"}, {"dividendos", "Rendimentos"},
	{"presente", "Presentes/Doações"}, {"doação", "Presentes/Doações"}, {"doacao", "Presentes/Doações"},
	{"prêmio", "Prêmios"}, {"premio", "Prêmios"},
}

var investmentCategories = []keywordLabel{
	{"cdb", "CDB"}, {"tesouro", "Tesouro"}, {"poupanca", "Poupança"}, {"poupança", "Poupança"},
	{"fundo", "Fundos"}, {"fii", "Fundos Imobiliários"},
	{"acoes", "Ações"}, {"ações", "Ações"}, {"acao", "Ações"},
	{"pix", "Reserva/Pix"}, {"cripto", "Cripto"}, {"bitcoin", "Cripto"},
}

// allCategories is the union of the three tables: keywords keep the
// position of their first occurrence, later tables override the label
// (so "aluguel" maps to "Aluguel").
var allCategories = mergeKeywordTables(expenseCategories, incomeCategories, investmentCategories)

func mergeKeywordTables(tables ...[]keywordLabel) []keywordLabel {
	index := make(map[string]int)
	var merged []keywordLabel
	for _, table := range tables {
		for _, kl := range table {
			if i, seen := index[kl.keyword]; seen {
				merged[i].label = kl.label
				continue
			}
			index[kl.keyword] = len(merged)
			merged = append(merged, kl)
		}
	}
	return merged
}

// MapCategory maps recognized keywords to a category label. The table for
// the classified type is consulted first; when nothing matches, the union
// of all tables is scanned (cross-type fallback is intentional). Default
// is "outros".
func MapCategory(text string, txType domain.TxType) string {
	t := strings.ToLower(text)

	var table []keywordLabel
	switch txType {
	case domain.TxExpense:
		table = expenseCategories
	case domain.TxIncome:
		table = incomeCategories
	case domain.TxInvestment:
		table = investmentCategories
	}

	for _, kl := range table {
		if strings.Contains(t, kl.keyword) {
			return kl.label
		}
	}
	for _, kl := range allCategories {
		if strings.Contains(t, kl.keyword) {
			return kl.label
		}
	}
	return domain.CategoryOther
}
