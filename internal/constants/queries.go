package constants

const (
	GetInformeSummary = `
	SELECT
		COUNT(*)                  AS total_informes,
		COALESCE(SUM(income), 0)  AS total_income,
		COALESCE(SUM(loss), 0)    AS total_loss
	FROM informes
	`
)
