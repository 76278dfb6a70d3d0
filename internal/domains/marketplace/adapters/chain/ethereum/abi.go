package ethereum

// Default interface schemas used when a descriptor carries no ABI of its own.
const (
	MarketplaceABI = `[
  {"inputs": [], "name": "ProductCount", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "name": "store",
   "outputs": [
     {"internalType": "uint256", "name": "id", "type": "uint256"},
     {"internalType": "uint256", "name": "price", "type": "uint256"},
     {"internalType": "uint256", "name": "stock", "type": "uint256"},
     {"internalType": "bytes32", "name": "name", "type": "bytes32"},
     {"internalType": "bytes", "name": "description", "type": "bytes"},
     {"internalType": "bytes", "name": "image", "type": "bytes"},
     {"internalType": "bytes32", "name": "productType", "type": "bytes32"},
     {"internalType": "bytes32", "name": "condition", "type": "bytes32"},
     {"internalType": "address", "name": "seller", "type": "address"}
   ],
   "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_id", "type": "uint256"}, {"internalType": "bool", "name": "_prepaid", "type": "bool"}],
   "name": "buyProduct", "outputs": [], "stateMutability": "payable", "type": "function"},
  {"anonymous": false, "inputs": [
     {"indexed": true, "internalType": "uint256", "name": "id", "type": "uint256"},
     {"indexed": true, "internalType": "address", "name": "buyer", "type": "address"},
     {"indexed": false, "internalType": "bool", "name": "prepaid", "type": "bool"}
   ], "name": "ProductBought", "type": "event"}
]`

	TokenABI = `[
  {"inputs": [{"internalType": "address", "name": "owner", "type": "address"}, {"internalType": "address", "name": "spender", "type": "address"}],
   "name": "allowance", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "spender", "type": "address"}, {"internalType": "uint256", "name": "value", "type": "uint256"}],
   "name": "approve", "outputs": [{"internalType": "bool", "name": "", "type": "bool"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "address", "name": "account", "type": "address"}],
   "name": "balanceOf", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

	NameRegistryABI = `[
  {"inputs": [{"internalType": "address", "name": "to", "type": "address"}, {"internalType": "uint256", "name": "tokenId", "type": "uint256"}],
   "name": "NameTransfer", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`
)

// Method names invoked on the bound contracts.
const (
	methodProductCount = "ProductCount"
	methodStore        = "store"
	methodBuyProduct   = "buyProduct"
	methodAllowance    = "allowance"
	methodApprove      = "approve"
	methodNameTransfer = "NameTransfer"
)
