package importer

import "strings"

type field int

const (
	fieldName field = iota
	fieldContact
	fieldPhone
	fieldEmail
	fieldAddress
	fieldIndustry
	fieldRegion
	fieldBankName
	fieldBankAccount
	fieldRemark
)

// aliases lists the header spellings accepted for each field. Matching ignores case and
// surrounding whitespace.
var aliases = map[field][]string{
	fieldName:        {"name", "customer", "customer name", "客户名称", "客户", "单位名称"},
	fieldContact:     {"contact", "contact person", "联系人"},
	fieldPhone:       {"phone", "telephone", "tel", "电话", "联系电话", "手机"},
	fieldEmail:       {"email", "e-mail", "邮箱", "电子邮箱"},
	fieldAddress:     {"address", "地址", "详细地址"},
	fieldIndustry:    {"industry", "行业", "所属行业"},
	fieldRegion:      {"region", "area", "地区", "区域"},
	fieldBankName:    {"bank", "bank name", "开户行", "开户银行"},
	fieldBankAccount: {"bank account", "account", "银行账号", "账号"},
	fieldRemark:      {"remark", "remarks", "notes", "备注"},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]field {
	idx := make(map[string]field)

	for f, names := range aliases {
		for _, n := range names {
			idx[normalizeHeader(n)] = f
		}
	}

	return idx
}

func normalizeHeader(s string) string {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	s = strings.TrimSuffix(s, "*")

	return strings.ToLower(strings.TrimSpace(s))
}

// colIndex maps a field to its column in the row.
type colIndex map[field]int

// detectHeader returns the first row that names the customer name column, along with the
// column of every recognised field. The first occurrence of a repeated header wins.
func detectHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			f, ok := aliasIndex[normalizeHeader(cell)]
			if !ok {
				continue
			}

			if _, seen := cols[f]; !seen {
				cols[f] = i
			}
		}

		if _, ok := cols[fieldName]; ok {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}
