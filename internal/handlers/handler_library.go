package handlers

import (
	"net/http"

	"github.com/grschool/sms_backend/internal/dto"
	"github.com/gin-gonic/gin"

	portssvc "github.com/grschool/sms_backend/internal/core/ports/services"
)

// libraryHandler handles the book catalogue and loan requests.
type libraryHandler struct {
	libraryService portssvc.LibrarySvcFacade
}

func newLibraryHandler(libraryService portssvc.LibrarySvcFacade) *libraryHandler {
	return &libraryHandler{libraryService: libraryService}
}

// registerLibraryRoutes registers library specific routes.
func registerLibraryRoutes(group *gin.RouterGroup, libraryService portssvc.LibrarySvcFacade) {
	h := newLibraryHandler(libraryService)

	library := group.Group("/library")
	{
		library.POST("/books", h.createBook)
		library.GET("/books", h.listBooks)
		library.GET("/books/:bookID", h.getBook)
		library.PUT("/books/:bookID", h.updateBook)
		library.DELETE("/books/:bookID", h.deleteBook)
		library.POST("/books/:bookID/borrow", h.borrowBook)
		library.POST("/loans/:loanID/return", h.returnBook)
		library.GET("/students/:studentID/loans", h.listStudentLoans)
	}
}

// createBook godoc
// @Summary Add a book to the catalogue
// @Tags library
// @Accept json
// @Produce json
// @Param book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /library/books [post]
func (h *libraryHandler) createBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	book, err := h.libraryService.CreateBook(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create book")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// listBooks godoc
// @Summary Browse the catalogue
// @Tags library
// @Produce json
// @Param category query string false "Category"
// @Param form query string false "Form"
// @Param search query string false "Match against title or author"
// @Success 200 {array} dto.BookResponse
// @Security BearerAuth
// @Router /library/books [get]
func (h *libraryHandler) listBooks(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	books, err := h.libraryService.ListBooks(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list books")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

func (h *libraryHandler) getBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	book, err := h.libraryService.GetBook(c.Request.Context(), actor, c.Param("bookID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve book")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *libraryHandler) updateBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	book, err := h.libraryService.UpdateBook(c.Request.Context(), actor, c.Param("bookID"), req)
	if err != nil {
		respondError(c, err, "Failed to update book")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

func (h *libraryHandler) deleteBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.libraryService.DeleteBook(c.Request.Context(), actor, c.Param("bookID")); err != nil {
		respondError(c, err, "Failed to delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// borrowBook godoc
// @Summary Lend a copy to a student
// @Description Decrements availability and records the loan. Fails when no copies are available. Staff only.
// @Tags library
// @Accept json
// @Produce json
// @Param bookID path string true "Book ID"
// @Param loan body dto.BorrowBookRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No copies available"
// @Security BearerAuth
// @Router /library/books/{bookID}/borrow [post]
func (h *libraryHandler) borrowBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	loan, err := h.libraryService.BorrowBook(c.Request.Context(), actor, c.Param("bookID"), req)
	if err != nil {
		respondError(c, err, "Failed to record loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// returnBook godoc
// @Summary Close a loan
// @Description Marks the loan returned and restores the copy. Staff only.
// @Tags library
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan already returned"
// @Security BearerAuth
// @Router /library/loans/{loanID}/return [post]
func (h *libraryHandler) returnBook(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	loan, err := h.libraryService.ReturnBook(c.Request.Context(), actor, c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to close loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listStudentLoans godoc
// @Summary List a student's loans
// @Description Lists loans, open ones first. Students may only read their own loans.
// @Tags library
// @Produce json
// @Param studentID path string true "Student ID"
// @Success 200 {array} dto.LoanResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /library/students/{studentID}/loans [get]
func (h *libraryHandler) listStudentLoans(c *gin.Context) {
	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	loans, err := h.libraryService.ListStudentLoans(c.Request.Context(), actor, c.Param("studentID"))
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans))
}
