package models

import "fmt"

var (
	ErrorDuplicateEntry = fmt.Errorf("duplicate_entry")
	ErrorInvalidInput   = fmt.Errorf("invalid_input")
	ErrorNotFound       = fmt.Errorf("not_found")

	ErrorDatabaseUndefined       = fmt.Errorf("database_undefined")
	ErrorStmtPreparationFailed   = fmt.Errorf("stmt_preparation_failed")
	ErrorInsertFailed            = fmt.Errorf("insert_failed")
	ErrorSelectFailed            = fmt.Errorf("select_failed")
	ErrorSelectsFailed           = fmt.Errorf("selects_failed")
	ErrorUpdateFailed            = fmt.Errorf("update_failed")
	ErrorDeleteFailed            = fmt.Errorf("delete_failed")
	ErrorRowsAffectedCheckFailed = fmt.Errorf("rows_affected_check_failed")

	mysqlErrorDuplicateEntryCode uint16 = 1062
)
