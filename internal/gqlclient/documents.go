package gqlclient

// Named GraphQL documents of the backend contract. The client never
// builds queries dynamically: every operation on the wire is one of
// these.

const getCurrentUserDoc = `
  query GetCurrentUser {
    me {
      id
      username
      email
      firstName
      lastName
    }
  }
`

const getProductsDoc = `
  query GetProducts {
    products {
      id
      name
      code
      price
      quantity
      laboratory
      alias
    }
  }
`

const getProductByCodeDoc = `
  query GetProductByCode($code: String!) {
    productByCode(code: $code) {
      id
      name
      code
      price
      quantity
      laboratory
      alias
    }
  }
`

const getPurchasesDoc = `
  query GetPurchase {
    purchases {
      id
      product {
        id
        name
      }
      price
      quantity
      subtotal
      total
      typeReceipt
      typePay
      date
    }
  }
`

const getClientSuppliersDoc = `
  query GetClientSuppliers {
    clientSuppliers {
      id
      name
      address
      phone
      mail
      nDocument
      typeDocument
      typePerson
    }
  }
`

const getSalesDoc = `
  query GetSales {
    sales {
      id
      total
      typeReceipt
      typePay
      dateCreation
      provider {
        id
        name
      }
      details {
        id
        product {
          id
          name
        }
        quantity
        price
        subtotal
        total
      }
    }
  }
`

const currentCashDoc = `
  query CurrentCash($subsidiaryId: ID!) {
    currentCash(subsidiaryId: $subsidiaryId) {
      id
      status
      initialAmount
      dateOpen
    }
  }
`

const cashPaymentsDoc = `
  query CashPayments($cashId: ID!) {
    cashPayments(cashId: $cashId) {
      id
      paymentType
      paymentMethod
      status
      paymentDate
      totalAmount
      paidAmount
      referenceNumber
      notes
    }
  }
`

const cashSummaryDoc = `
  query CashSummary($cashId: ID!) {
    cashSummary(cashId: $cashId) {
      byMethod { method total }
      totalExpected
      totalCounted
      difference
    }
  }
`

const getCashesDoc = `
  query GetCashes {
    cashes {
      id
      name
      status
      initialAmount
      closingAmount
      difference
      dateOpen
      dateClose
      subsidiary { id }
    }
  }
`

const registerUserDoc = `
  mutation RegisterUser($input: RegisterUserInput!) {
    registerUser(input: $input) {
      user {
        id
        username
        email
        firstName
        lastName
      }
      success
      errors {
        field
        message
      }
    }
  }
`

const loginUserDoc = `
  mutation LoginUser($username: String!, $password: String!) {
    loginUser(username: $username, password: $password) {
      token
      refreshToken
      user {
        id
        username
        email
        firstName
        lastName
      }
      success
      errors {
        field
        message
      }
    }
  }
`

const logoutUserDoc = `
  mutation LogoutUser {
    logoutUser {
      success
      message
    }
  }
`

const createProductDoc = `
  mutation CreateProduct($input: CreateProductInput!) {
    createProduct(input: $input) {
      product {
        id
        name
        code
        price
        quantity
        laboratory
        alias
      }
      success
      errors {
        field
        message
      }
    }
  }
`

const updateProductDoc = `
  mutation UpdateProduct($id: ID!, $input: UpdateProductInput!) {
    updateProduct(id: $id, input: $input) {
      product {
        id
        name
        code
        price
        quantity
        laboratory
        alias
      }
      success
      errors {
        message
      }
    }
  }
`

const deleteProductDoc = `
  mutation DeleteProduct($id: ID!) {
    deleteProduct(id: $id) {
      success
      message
      errors {
        field
        message
      }
    }
  }
`

const createSaleDoc = `
  mutation CreateSale($input: CreateSaleInput!) {
    createSale(input: $input) {
      sale {
        id
        total
        typeReceipt
        typePay
        dateCreation
        provider {
          id
          name
        }
        details {
          id
          product {
            id
            name
          }
          quantity
          price
          subtotal
          total
        }
      }
      success
      errors {
        message
      }
    }
  }
`

const createPurchaseDoc = `
  mutation CreatePurchase($input: CreatePurchaseInput!) {
    createPurchase(input: $input) {
      purchase {
        id
        product {
          id
          name
        }
        price
        quantity
        subtotal
        total
        typeReceipt
        typePay
        date
      }
      success
      errors {
        message
      }
    }
  }
`

const updatePurchaseDoc = `
  mutation UpdatePurchase($id: ID!, $input: UpdatePurchaseInput!) {
    updatePurchase(id: $id, input: $input) {
      purchase {
        id
        product { id name }
        price
        quantity
        subtotal
        total
        typeReceipt
        typePay
        date
      }
      success
      errors { message }
    }
  }
`

const createClientSupplierDoc = `
  mutation CreateClientSupplier($input: CreateClientSupplierInput!) {
    createClientSupplier(input: $input) {
      clientSupplier {
        id
        name
        address
        phone
        mail
        nDocument
        typeDocument
        typePerson
      }
      success
      errors {
        message
      }
    }
  }
`

const updateClientSupplierDoc = `
  mutation UpdateClientSupplier($id: ID!, $input: UpdateClientSupplierInput!) {
    updateClientSupplier(id: $id, input: $input) {
      clientSupplier {
        id
        name
        address
        phone
        mail
        nDocument
        typeDocument
        typePerson
      }
      success
      errors {
        message
      }
    }
  }
`

const deleteClientSupplierDoc = `
  mutation DeleteClientSupplier($id: ID!) {
    deleteClientSupplier(id: $id) {
      success
      message
      errors {
        field
        message
      }
    }
  }
`

const openCashDoc = `
  mutation OpenCash($input: OpenCashInput!) {
    openCash(input: $input) {
      cash {
        id
        status
        initialAmount
        dateOpen
        subsidiary { id }
      }
      success
      errors { messages }
    }
  }
`

const closeCashDoc = `
  mutation CloseCash($input: CloseCashInput!) {
    closeCash(input: $input) {
      cash {
        id
        status
        closingAmount
        difference
        dateClose
      }
      summary {
        byMethod { method total }
        totalExpected
        totalCounted
        difference
      }
      success
      errors { messages }
    }
  }
`

const createExpensePaymentDoc = `
  mutation CreateExpensePayment($input: CreateExpensePaymentInput!) {
    createExpensePayment(input: $input) {
      payment {
        id
        paymentType
        paymentMethod
        status
        paymentDate
        totalAmount
        paidAmount
      }
      success
      errors { messages }
    }
  }
`
