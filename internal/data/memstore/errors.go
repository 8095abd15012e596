package memstore

import "fmt"

func errNoRow(table string, id int64) error {
	return fmt.Errorf("update %s %d: no rows affected", table, id)
}
