/*
	Project: Tuition - attendance, homework & fees of a small tutoring practice
*/
package tuition

/*
TODO: record.Store scans linearly for (studentId, date); index attendance & homework by that pair
	if a practice ever grows past a few hundred students.

TODO: monthly stats window homework on createdAt while fees & attendance use their own date.
	Confirm with users before aligning them.

TODO: cmd `admin stats -month YYYY-MM` to print a past month's statistics.
*/
